/*
 * graph.go, part of mdkit.
 *
 *
 * Copyright 2023 A. Villagran
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package align

import (
	"sort"

	"github.com/avillagran/mdkit"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
)

// Node is an atom seen as a graph node. Its ID is the index of the
// atom in the topology it came from.
type Node struct {
	*mdkit.Atom
	id int64
}

// ID returns the index of the atom in its molecule.
func (n *Node) ID() int64 {
	return n.id
}

// Edge is a bond seen as a graph edge.
type Edge struct {
	from, to *Node
}

func (e *Edge) From() graph.Node {
	return e.from
}

func (e *Edge) To() graph.Node {
	return e.to
}

func (e *Edge) ReversedEdge() graph.Edge {
	return &Edge{from: e.to, to: e.from}
}

// Graph is the bond graph of a molecule, with atoms as nodes and
// bonds as undirected edges. It implements graph.Undirected so the
// gonum graph machinery can be used on it, and it is what the
// substructure search operates on.
type Graph struct {
	nodes []*Node
	adj   map[int64]map[int64]bool
}

var _ graph.Undirected = (*Graph)(nil)

// NewGraph builds the bond graph for the given frame of mol. If the
// molecule carries no bond information, bonds are first assigned from
// the geometry with mdkit.AssignBonds. If light is false, hydrogens
// are left out of the graph.
func NewGraph(mol *mdkit.Molecule, frame int, light bool) (*Graph, error) {
	if mol == nil {
		return nil, Error{message: ErrNilMolecule, critical: true}
	}
	if frame < 0 || frame >= len(mol.Coords) {
		return nil, Error{message: ErrNoFrame, critical: true}
	}
	bonded := false
	for i := 0; i < mol.Len(); i++ {
		if len(mol.Atom(i).Bonds) > 0 {
			bonded = true
			break
		}
	}
	if !bonded {
		err := mdkit.AssignBonds(mol.Coords[frame], mol.Topology)
		if err != nil {
			return nil, errDecorate(err, "NewGraph")
		}
	}
	g := &Graph{adj: map[int64]map[int64]bool{}}
	in := make(map[int]bool, mol.Len())
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if !light && at.Symbol == "H" {
			continue
		}
		g.nodes = append(g.nodes, &Node{Atom: at, id: int64(i)})
		g.adj[int64(i)] = map[int64]bool{}
		in[i] = true
	}
	for _, n := range g.nodes {
		for _, b := range n.Bonds {
			other := b.Cross(n.Atom)
			if other == nil || !in[other.Index()] {
				continue
			}
			g.adj[n.id][int64(other.Index())] = true
			g.adj[int64(other.Index())][n.id] = true
		}
	}
	return g, nil
}

// Order returns the number of atoms in the graph.
func (g *Graph) Order() int {
	return len(g.nodes)
}

func (g *Graph) Node(id int64) graph.Node {
	for _, n := range g.nodes {
		if n.id == id {
			return n
		}
	}
	return nil
}

func (g *Graph) Nodes() graph.Nodes {
	ret := make([]graph.Node, len(g.nodes))
	for i, n := range g.nodes {
		ret[i] = n
	}
	return iterator.NewOrderedNodes(ret)
}

func (g *Graph) From(id int64) graph.Nodes {
	neigh, ok := g.adj[id]
	if !ok {
		return graph.Empty
	}
	ids := make([]int64, 0, len(neigh))
	for v := range neigh {
		ids = append(ids, v)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	ret := make([]graph.Node, len(ids))
	for i, v := range ids {
		ret[i] = g.Node(v)
	}
	return iterator.NewOrderedNodes(ret)
}

func (g *Graph) HasEdgeBetween(xid, yid int64) bool {
	return g.adj[xid][yid]
}

func (g *Graph) Edge(uid, vid int64) graph.Edge {
	if !g.HasEdgeBetween(uid, vid) {
		return nil
	}
	u, _ := g.Node(uid).(*Node)
	v, _ := g.Node(vid).(*Node)
	return &Edge{from: u, to: v}
}

func (g *Graph) EdgeBetween(xid, yid int64) graph.Edge {
	return g.Edge(xid, yid)
}
