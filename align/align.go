/*
 * align.go, part of mdkit.
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

// Package align matches, superposes and merges molecules. Atoms of
// two molecules are paired by searching for the maximum common
// substructure of their bond graphs, candidate pairings are ranked by
// the RMSD between the mapped atoms, and the best pairing can be used
// to rigidly align one molecule onto the other or to build a merged
// system holding both end states.
package align

import (
	"log"
	"sort"
	"time"

	"github.com/avillagran/mdkit"
	"github.com/avillagran/mdkit/xyz"
)

// Mapping pairs atom indices of one molecule with atom indices of
// another.
type Mapping map[int]int

// Copy returns an independent copy of the mapping.
func (m Mapping) Copy() Mapping {
	ret := make(Mapping, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}

// ScoredMapping is a candidate atom pairing together with the RMSD
// between the paired atoms that was used to rank it.
type ScoredMapping struct {
	Mapping Mapping
	RMSD    float64
}

// MatchOptions controls the substructure search in MatchAtoms. The
// zero value is not useful; start from DefaultMatchOptions.
type MatchOptions struct {
	// Matches is the largest number of scored pairings to return.
	Matches int
	// Prematch fixes pairs before the search starts.
	Prematch Mapping
	// Timeout bounds the substructure search. When it expires the
	// pairings found so far are scored and returned.
	Timeout time.Duration
	// MatchLight includes hydrogens in the search when true.
	MatchLight bool
	// ScoreAlign superposes the mapped atoms before measuring the
	// RMSD used for ranking. Without it the molecules are compared
	// in the frames they came in.
	ScoreAlign bool
	// Verbose makes the matcher log its progress.
	Verbose bool
}

// DefaultMatchOptions returns the options used when MatchAtoms is
// given nil options: a single match, a 5 s search bound, hydrogens
// included and alignment before scoring.
func DefaultMatchOptions() *MatchOptions {
	return &MatchOptions{
		Matches:    1,
		Timeout:    5 * time.Second,
		MatchLight: true,
		ScoreAlign: true,
	}
}

// MatchAtoms pairs the atoms of molA with the atoms of molB by
// maximum common substructure, and returns up to opt.Matches pairings
// sorted from lowest to highest RMSD. Fewer pairings than requested
// are returned when fewer exist. If the molecules have no common
// substructure at all, MatchAtoms returns nil with a nil error.
func MatchAtoms(molA, molB *mdkit.Molecule, opt *MatchOptions) ([]ScoredMapping, error) {
	if molA == nil || molB == nil {
		return nil, Error{message: ErrNilMolecule, critical: true}
	}
	if opt == nil {
		opt = DefaultMatchOptions()
	}
	if opt.Matches <= 0 {
		return nil, Error{message: ErrBadMatches, critical: true}
	}
	if opt.Timeout < 0 {
		return nil, Error{message: ErrBadTimeout, critical: true}
	}
	ga, err := NewGraph(molA, 0, opt.MatchLight)
	if err != nil {
		return nil, errDecorate(err, "MatchAtoms")
	}
	gb, err := NewGraph(molB, 0, opt.MatchLight)
	if err != nil {
		return nil, errDecorate(err, "MatchAtoms")
	}
	if opt.Verbose {
		log.Printf("align: matching %d against %d atoms", ga.Order(), gb.Order())
	}
	mappings, err := findMCS(ga, gb, opt.Prematch, time.Now().Add(opt.Timeout))
	if err != nil {
		return nil, errDecorate(err, "MatchAtoms")
	}
	if len(mappings) == 0 {
		return nil, nil
	}
	if opt.Verbose {
		log.Printf("align: %d maximum mappings of %d atoms", len(mappings), len(mappings[0]))
	}
	scored := make([]ScoredMapping, 0, len(mappings))
	for _, m := range mappings {
		r, err := scoreMapping(molA, molB, m, opt.ScoreAlign)
		if err != nil {
			return nil, errDecorate(err, "MatchAtoms")
		}
		scored = append(scored, ScoredMapping{Mapping: m, RMSD: r})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].RMSD < scored[j].RMSD })
	if len(scored) > opt.Matches {
		scored = scored[:opt.Matches]
	}
	return scored, nil
}

// BestMatch returns the lowest-RMSD atom pairing between the two
// molecules, searched with the default options. It returns nil with a
// nil error when the molecules share no substructure.
func BestMatch(molA, molB *mdkit.Molecule) (Mapping, error) {
	scored, err := MatchAtoms(molA, molB, nil)
	if err != nil {
		return nil, errDecorate(err, "BestMatch")
	}
	if len(scored) == 0 {
		return nil, nil
	}
	return scored[0].Mapping, nil
}

// RMSDAlign returns a copy of molA rigidly moved so that the atoms
// named in mapping sit as close as possible to their partners in
// molB. With a nil mapping the pairing is searched first with
// BestMatch. Every frame of molA is moved with the transform computed
// from the first frames of both molecules.
func RMSDAlign(molA, molB *mdkit.Molecule, mapping Mapping) (*mdkit.Molecule, error) {
	if molA == nil || molB == nil {
		return nil, Error{message: ErrNilMolecule, critical: true}
	}
	if mapping == nil {
		var err error
		mapping, err = BestMatch(molA, molB)
		if err != nil {
			return nil, errDecorate(err, "RMSDAlign")
		}
		if mapping == nil {
			return nil, Error{message: "no common substructure to align on", critical: true}
		}
	}
	p, q, err := mappedCoords(molA, molB, mapping)
	if err != nil {
		return nil, errDecorate(err, "RMSDAlign")
	}
	rot, cp, cq, err := superpose(p, q)
	if err != nil {
		return nil, errDecorate(err, "RMSDAlign")
	}
	moved := molA.Copy()
	for i, frame := range moved.Coords {
		moved.Coords[i] = transform(frame, rot, cp, cq)
	}
	return moved, nil
}

// scoreMapping measures the RMSD between the mapped atoms of the two
// molecules, superposing them first when align is true.
func scoreMapping(molA, molB *mdkit.Molecule, m Mapping, align bool) (float64, error) {
	p, q, err := mappedCoords(molA, molB, m)
	if err != nil {
		return 0, err
	}
	if align {
		rot, cp, cq, err := superpose(p, q)
		if err != nil {
			return 0, err
		}
		p = transform(p, rot, cp, cq)
	}
	r, err := mdkit.RMSD(p, q)
	if err != nil {
		return 0, errDecorate(err, "scoreMapping")
	}
	return r, nil
}

// mappedCoords extracts the coordinates of the mapped atoms from the
// first frame of each molecule, in a consistent row order.
func mappedCoords(molA, molB *mdkit.Molecule, m Mapping) (*xyz.Matrix, *xyz.Matrix, error) {
	if len(molA.Coords) == 0 || len(molB.Coords) == 0 {
		return nil, nil, Error{message: ErrNoFrame, critical: true}
	}
	if len(m) == 0 {
		return nil, nil, Error{message: ErrNotEnoughAtoms, critical: true}
	}
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	ca := molA.Coords[0]
	cb := molB.Coords[0]
	p := xyz.Zeros(len(keys))
	q := xyz.Zeros(len(keys))
	for i, k := range keys {
		v := m[k]
		if k < 0 || k >= molA.Len() || v < 0 || v >= molB.Len() {
			return nil, nil, Error{message: ErrBadMapping, critical: true}
		}
		p.SetRow(i, ca.Row(k))
		q.SetRow(i, cb.Row(v))
	}
	return p, q, nil
}
