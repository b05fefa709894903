/*
 * align_test.go, part of mdkit.
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
	"math"
	"testing"
	"time"

	"github.com/avillagran/mdkit"
	"github.com/avillagran/mdkit/xyz"
)

// makeMol builds a one-frame molecule from symbols and flat
// coordinates. Bonds are left to be assigned from the geometry.
func makeMol(t *testing.T, symbols []string, coords []float64) *mdkit.Molecule {
	t.Helper()
	ats := make([]*mdkit.Atom, len(symbols))
	for i, s := range symbols {
		ats[i] = &mdkit.Atom{Name: s, ID: i + 1, Symbol: s, Molname: "LIG", MolID: 1}
	}
	top, err := mdkit.NewTopology(ats, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	frame, err := xyz.NewMatrix(coords)
	if err != nil {
		t.Fatal(err)
	}
	mol, err := mdkit.NewMolecule(top, []*xyz.Matrix{frame})
	if err != nil {
		t.Fatal(err)
	}
	return mol
}

// a three atom chain, C-C-O, with only the consecutive atoms within
// bonding distance
func chainCCO(t *testing.T) *mdkit.Molecule {
	return makeMol(t, []string{"C", "C", "O"}, []float64{
		0.0, 0.0, 0.0,
		1.5, 0.0, 0.0,
		2.9, 0.0, 0.0,
	})
}

func TestBestMatchIdentity(t *testing.T) {
	molA := chainCCO(t)
	molB := chainCCO(t)
	m, err := BestMatch(molA, molB)
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 3 {
		t.Fatalf("expected 3 mapped atoms, got %d", len(m))
	}
	for i := 0; i < 3; i++ {
		if m[i] != i {
			t.Errorf("atom %d mapped to %d, expected identity", i, m[i])
		}
	}
}

func TestMatchAtomsNoCommonSubstructure(t *testing.T) {
	molA := makeMol(t, []string{"C"}, []float64{0, 0, 0})
	molB := makeMol(t, []string{"N"}, []float64{0, 0, 0})
	scored, err := MatchAtoms(molA, molB, nil)
	if err != nil {
		t.Fatal(err)
	}
	if scored != nil {
		t.Fatalf("expected no matches, got %d", len(scored))
	}
}

func TestMatchAtomsLimit(t *testing.T) {
	// two bonded carbons match themselves both ways
	molA := makeMol(t, []string{"C", "C"}, []float64{0, 0, 0, 1.5, 0, 0})
	molB := makeMol(t, []string{"C", "C"}, []float64{0, 0, 0, 1.5, 0, 0})
	opt := DefaultMatchOptions()
	opt.Matches = 5
	scored, err := MatchAtoms(molA, molB, opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 2 {
		t.Fatalf("expected 2 mappings, got %d", len(scored))
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].RMSD < scored[i-1].RMSD {
			t.Errorf("mappings not sorted by RMSD: %v", scored)
		}
	}
	opt.Matches = 1
	scored, err = MatchAtoms(molA, molB, opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 1 {
		t.Fatalf("expected 1 mapping, got %d", len(scored))
	}
	if len(scored[0].Mapping) != 2 {
		t.Errorf("expected 2 mapped atoms, got %d", len(scored[0].Mapping))
	}
}

func TestMatchAtomsPrematch(t *testing.T) {
	molA := makeMol(t, []string{"C", "C"}, []float64{0, 0, 0, 1.5, 0, 0})
	molB := makeMol(t, []string{"C", "C"}, []float64{0, 0, 0, 1.5, 0, 0})
	opt := DefaultMatchOptions()
	opt.Matches = 5
	opt.Prematch = Mapping{0: 1}
	scored, err := MatchAtoms(molA, molB, opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) == 0 {
		t.Fatal("expected at least one mapping")
	}
	for _, s := range scored {
		if s.Mapping[0] != 1 {
			t.Errorf("prematch not honored: %v", s.Mapping)
		}
	}
}

func TestMatchAtomsLight(t *testing.T) {
	molA := makeMol(t, []string{"C", "H"}, []float64{0, 0, 0, 1.0, 0, 0})
	molB := makeMol(t, []string{"C", "H"}, []float64{0, 0, 0, 1.0, 0, 0})
	opt := DefaultMatchOptions()
	opt.MatchLight = false
	scored, err := MatchAtoms(molA, molB, opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 1 || len(scored[0].Mapping) != 1 {
		t.Fatalf("expected a single heavy-atom pair, got %v", scored)
	}
	opt.MatchLight = true
	scored, err = MatchAtoms(molA, molB, opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(scored) != 1 || len(scored[0].Mapping) != 2 {
		t.Fatalf("expected both atoms mapped, got %v", scored)
	}
}

func TestMatchAtomsBadOptions(t *testing.T) {
	molA := chainCCO(t)
	molB := chainCCO(t)
	opt := DefaultMatchOptions()
	opt.Matches = 0
	if _, err := MatchAtoms(molA, molB, opt); err == nil {
		t.Error("expected an error for zero matches")
	}
	opt = DefaultMatchOptions()
	opt.Timeout = -time.Second
	if _, err := MatchAtoms(molA, molB, opt); err == nil {
		t.Error("expected an error for a negative timeout")
	}
	if _, err := MatchAtoms(nil, molB, nil); err == nil {
		t.Error("expected an error for a nil molecule")
	}
}

func TestRMSDAlign(t *testing.T) {
	molA := chainCCO(t)
	molB := chainCCO(t)
	// rotate molA 90 degrees about z and shift it
	c := molA.Coords[0]
	for i := 0; i < c.NVecs(); i++ {
		r := c.Row(i)
		c.SetRow(i, []float64{-r[1] + 3, r[0] + 4, r[2] + 5})
	}
	before, err := mdkit.RMSD(molA.Coords[0], molB.Coords[0])
	if err != nil {
		t.Fatal(err)
	}
	if before < 1 {
		t.Fatalf("molecules unexpectedly close before alignment: %g", before)
	}
	moved, err := RMSDAlign(molA, molB, Mapping{0: 0, 1: 1, 2: 2})
	if err != nil {
		t.Fatal(err)
	}
	after, err := mdkit.RMSD(moved.Coords[0], molB.Coords[0])
	if err != nil {
		t.Fatal(err)
	}
	if after > 1e-6 {
		t.Errorf("RMSD after alignment too large: %g", after)
	}
	if after > before {
		t.Errorf("alignment made things worse: %g -> %g", before, after)
	}
	// the input must not move
	if math.Abs(molA.Coords[0].At(0, 0)-3) > 1e-12 {
		t.Error("RMSDAlign modified its input")
	}
}

func TestMerge(t *testing.T) {
	molA := chainCCO(t)
	molB := makeMol(t, []string{"C", "C", "N"}, []float64{
		0.0, 0.0, 0.0,
		1.5, 0.0, 0.0,
		2.9, 0.0, 0.0,
	})
	merged, err := Merge(molA, molB, Mapping{0: 0, 1: 1})
	if err != nil {
		t.Fatal(err)
	}
	if merged.Len() != 4 {
		t.Fatalf("expected 4 atoms in the merged system, got %d", merged.Len())
	}
	if merged.Len0() != 3 {
		t.Errorf("expected 3 atoms from the first molecule, got %d", merged.Len0())
	}
	s0, err := merged.EndState(0)
	if err != nil {
		t.Fatal(err)
	}
	s1, err := merged.EndState(1)
	if err != nil {
		t.Fatal(err)
	}
	if s0.Len() != 4 || s1.Len() != 4 {
		t.Fatal("end states must cover the whole merged system")
	}
	if s0.Atom(2).Symbol != "O" || s0.Atom(3).Symbol != "N" {
		t.Errorf("unexpected atom order: %s %s", s0.Atom(2).Symbol, s0.Atom(3).Symbol)
	}
	// the oxygen keeps its own coordinates in the state it is a dummy in
	if s1.Coords[0].At(2, 0) != molA.Coords[0].At(2, 0) {
		t.Error("dummy atom moved between end states")
	}
	if _, err := merged.EndState(2); err == nil {
		t.Error("expected an error for an end state other than 0 or 1")
	}
}

func TestMergeBadMapping(t *testing.T) {
	molA := chainCCO(t)
	molB := chainCCO(t)
	if _, err := Merge(molA, molB, Mapping{0: 7}); err == nil {
		t.Error("expected an error for an out of range mapping")
	}
	if _, err := Merge(molA, molB, Mapping{0: 0, 1: 0}); err == nil {
		t.Error("expected an error for a repeated target atom")
	}
}
