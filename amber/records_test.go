/*
 * records_test.go, part of mdkit.
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

package amber

import (
	"strings"
	"testing"
)

const dynFrame100 = ` NSTEP =      100   TIME(PS) =       0.200  TEMP(K) =   300.05  PRESS =     0.0
 Etot   =      -100.5  EKtot   =        50.2  EPtot      =      -150.7
 BOND   =         3.1  ANGLE   =         7.9  DIHED      =        11.3
 1-4 NB =         5.3  1-4 EEL =        48.1  VDWAALS    =       -20.6
 EELEC  =      -205.8  EHBOND  =         0.0  RESTRAINT  =         0.0
`

const dynFrame200 = ` NSTEP =      200   TIME(PS) =       0.400  TEMP(K) =   301.11  PRESS =     0.0
 Etot   =      -101.0  EKtot   =        50.0  EPtot      =      -151.0
 BOND   =         3.0  ANGLE   =         8.0  DIHED      =        11.0
 1-4 NB =         5.0  1-4 EEL =        48.0  VDWAALS    =       -21.0
 EELEC  =      -206.0  EHBOND  =         0.0  RESTRAINT  =         0.0
`

func TestUpdateParsesDynamicsRecords(t *testing.T) {
	s := NewRecordStore()
	s.Update(strings.NewReader(dynFrame100), Dynamics)
	for key, want := range map[string]float64{
		"NSTEP":     100,
		"TIME(PS)":  0.2,
		"TEMP(K)":   300.05,
		"ETOT":      -100.5,
		"BOND":      3.1,
		"1-4 NB":    5.3,
		"1-4 EEL":   48.1,
		"VDWAALS":   -20.6,
		"EELEC":     -205.8,
		"RESTRAINT": 0,
	} {
		got, ok := s.Latest(key)
		if !ok {
			t.Errorf("key %q missing", key)
			continue
		}
		if got != want {
			t.Errorf("key %q: got %v, want %v", key, got, want)
		}
	}
}

func TestUpdateSuppressesDuplicateFrames(t *testing.T) {
	s := NewRecordStore()
	// the energy file is a snapshot; seeing the same frame twice
	// must not duplicate it
	s.Update(strings.NewReader(dynFrame100), Dynamics)
	s.Update(strings.NewReader(dynFrame100), Dynamics)
	series, ok := s.Series("NSTEP")
	if !ok || len(series) != 1 {
		t.Fatalf("expected a single frame, got %v", series)
	}
	etot, _ := s.Series("ETOT")
	if len(etot) != 1 {
		t.Errorf("duplicate frame leaked into ETOT: %v", etot)
	}
}

func TestUpdateAppendsNewFramesInOrder(t *testing.T) {
	s := NewRecordStore()
	s.Update(strings.NewReader(dynFrame100), Dynamics)
	s.Update(strings.NewReader(dynFrame200), Dynamics)
	steps, ok := s.Series("NSTEP")
	if !ok || len(steps) != 2 {
		t.Fatalf("expected 2 frames, got %v", steps)
	}
	if steps[0] != 100 || steps[1] != 200 {
		t.Errorf("frames out of order: %v", steps)
	}
	etot, _ := s.Series("ETOT")
	if len(etot) != 2 || etot[1] != -101.0 {
		t.Errorf("wrong ETOT history: %v", etot)
	}
}

func TestUpdateSkipsBannerLines(t *testing.T) {
	s := NewRecordStore()
	content := "| TIME(PS) = 999.9\n|ETOT = 1.0\n" + dynFrame100
	s.Update(strings.NewReader(content), Dynamics)
	v, ok := s.Latest("TIME(PS)")
	if !ok || v != 0.2 {
		t.Errorf("banner line leaked into records: %v %v", v, ok)
	}
}

func TestUpdateMinimisationDialect(t *testing.T) {
	s := NewRecordStore()
	content := `   NSTEP       ENERGY          RMS            GMAX         NAME    NUMBER
      50      -1.2345E+02     1.0E-01      5.0E-01      C1        1
`
	s.Update(strings.NewReader(content), Minimisation)
	step, ok := s.Latest("NSTEP")
	if !ok || step != 50 {
		t.Fatalf("wrong minimisation step: %v %v", step, ok)
	}
	energy, ok := s.Latest("ENERGY")
	if !ok || energy != -123.45 {
		t.Errorf("wrong minimisation energy: %v %v", energy, ok)
	}
	// re-reading the same snapshot must not append
	s.Update(strings.NewReader(content), Minimisation)
	steps, _ := s.Series("NSTEP")
	if len(steps) != 1 {
		t.Errorf("duplicate minimisation frame: %v", steps)
	}
}

func TestUnseenKey(t *testing.T) {
	s := NewRecordStore()
	s.Update(strings.NewReader(dynFrame100), Dynamics)
	if _, ok := s.Latest("DENSITY"); ok {
		t.Error("unseen key reported present")
	}
	if _, ok := s.Series("DENSITY"); ok {
		t.Error("unseen key series reported present")
	}
}

func TestResetAndKeys(t *testing.T) {
	s := NewRecordStore()
	s.Update(strings.NewReader(dynFrame100), Dynamics)
	keys := s.Keys()
	if len(keys) == 0 || keys[0] != "NSTEP" {
		t.Errorf("keys must keep first-seen order, got %v", keys)
	}
	s.Reset()
	if !s.Empty() {
		t.Error("store not empty after Reset")
	}
}

func TestSeriesReturnsACopy(t *testing.T) {
	s := NewRecordStore()
	s.Update(strings.NewReader(dynFrame100), Dynamics)
	series, _ := s.Series("ETOT")
	series[0] = 42
	again, _ := s.Series("ETOT")
	if again[0] == 42 {
		t.Error("Series exposed internal storage")
	}
}
