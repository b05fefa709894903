/*
 * mcs.go, part of mdkit.
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
	"fmt"
	"sort"
	"strings"
	"time"
)

// maxMCSResults caps how many maximum mappings the search keeps. The
// number of equivalent mappings grows factorially for symmetric
// molecules, so an uncapped search can drown in permutations of the
// same substructure.
const maxMCSResults = 1000

// mcsSearch holds the state of a maximum common substructure search
// between two bond graphs.
type mcsSearch struct {
	a, b     *Graph
	deadline time.Time
	expired  bool
	best     int
	results  []Mapping
	seen     map[string]bool
	// current partial mapping, by position in a.nodes / b.nodes
	aTob  []int
	bUsed []bool
}

// findMCS returns all maximum common substructure mappings between the
// two graphs, as maps from atom indices in a to atom indices in b.
// Pairs in prematch are fixed before the search starts. An expired
// deadline stops the search and returns whatever was found so far.
func findMCS(a, b *Graph, prematch Mapping, deadline time.Time) ([]Mapping, error) {
	s := &mcsSearch{
		a:        a,
		b:        b,
		deadline: deadline,
		seen:     map[string]bool{},
		aTob:     make([]int, a.Order()),
		bUsed:    make([]bool, b.Order()),
	}
	for i := range s.aTob {
		s.aTob[i] = -1
	}
	size := 0
	for ai, bi := range prematch {
		pa := s.a.position(int64(ai))
		pb := s.b.position(int64(bi))
		if pa < 0 || pb < 0 {
			return nil, Error{message: fmt.Sprintf("%s: prematch pair %d->%d", ErrBadMapping, ai, bi), critical: true}
		}
		if s.aTob[pa] >= 0 || s.bUsed[pb] {
			return nil, Error{message: fmt.Sprintf("%s: prematch pair %d->%d repeated", ErrBadMapping, ai, bi), critical: true}
		}
		s.aTob[pa] = pb
		s.bUsed[pb] = true
		size++
	}
	s.extend(0, size)
	return s.results, nil
}

// extend tries to grow the current partial mapping starting from
// position pos in graph a. size is the number of pairs mapped so far.
func (s *mcsSearch) extend(pos, size int) {
	if s.expired {
		return
	}
	if time.Now().After(s.deadline) {
		s.expired = true
		return
	}
	if pos == len(s.aTob) {
		s.record(size)
		return
	}
	// Even mapping every remaining atom cannot beat the best found,
	// so this branch is dead.
	if size+len(s.aTob)-pos < s.best {
		return
	}
	if s.aTob[pos] >= 0 {
		s.extend(pos+1, size)
		return
	}
	na := s.a.nodes[pos]
	for pb, nb := range s.b.nodes {
		if s.bUsed[pb] || nb.Symbol != na.Symbol {
			continue
		}
		if !s.compatible(pos, pb) {
			continue
		}
		s.aTob[pos] = pb
		s.bUsed[pb] = true
		s.extend(pos+1, size+1)
		s.aTob[pos] = -1
		s.bUsed[pb] = false
		if s.expired {
			return
		}
	}
	// leaving the atom unmapped is always an option
	s.extend(pos+1, size)
}

// compatible reports whether mapping a.nodes[pa] to b.nodes[pb]
// preserves bonding with every pair already in the mapping.
func (s *mcsSearch) compatible(pa, pb int) bool {
	ida := s.a.nodes[pa].id
	idb := s.b.nodes[pb].id
	for qa, qb := range s.aTob {
		if qb < 0 {
			continue
		}
		ea := s.a.HasEdgeBetween(ida, s.a.nodes[qa].id)
		eb := s.b.HasEdgeBetween(idb, s.b.nodes[qb].id)
		if ea != eb {
			return false
		}
	}
	return true
}

// record stores the current complete mapping if it is a single
// connected substructure and ties or beats the best size seen so far.
// A strictly larger mapping discards all the smaller ones collected
// before it.
func (s *mcsSearch) record(size int) {
	if size < s.best || size == 0 {
		return
	}
	m := make(Mapping, size)
	ids := make([]int64, 0, size)
	for pa, pb := range s.aTob {
		if pb >= 0 {
			m[int(s.a.nodes[pa].id)] = int(s.b.nodes[pb].id)
			ids = append(ids, s.a.nodes[pa].id)
		}
	}
	if !connected(s.a, ids) {
		return
	}
	if size > s.best {
		s.best = size
		s.results = s.results[:0]
		s.seen = map[string]bool{}
	}
	if len(s.results) >= maxMCSResults {
		return
	}
	key := m.key()
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.results = append(s.results, m)
}

// connected reports whether the mapped atoms of g form a single
// connected piece of the bond graph.
func connected(g *Graph, ids []int64) bool {
	if len(ids) <= 1 {
		return true
	}
	in := make(map[int64]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}
	visited := map[int64]bool{ids[0]: true}
	queue := []int64{ids[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range g.adj[cur] {
			if in[next] && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(visited) == len(ids)
}

// position returns the index in g.nodes of the node with the given
// atom index, or -1 if the atom is not part of the graph.
func (g *Graph) position(id int64) int {
	for i, n := range g.nodes {
		if n.id == id {
			return i
		}
	}
	return -1
}

// key returns a canonical string for the mapping, used to drop
// duplicates found through different search paths.
func (m Mapping) key() string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%d:%d;", k, m[k])
	}
	return b.String()
}
