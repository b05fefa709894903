/*
 * protocol.go, part of mdkit.
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

// Package protocol describes molecular dynamics simulation protocols
// and renders them as sander input files.
package protocol

import (
	"fmt"
	"math"
	"strings"
)

// timestep used for dynamics, in ns. 2 fs requires constrained
// hydrogens, which the generated input always asks for.
const timestep = 2e-6

// Kind tells the protocol types apart.
type Kind int

const (
	KindMinimisation Kind = iota
	KindEquilibration
	KindProduction
)

func (k Kind) String() string {
	switch k {
	case KindMinimisation:
		return "minimisation"
	case KindEquilibration:
		return "equilibration"
	case KindProduction:
		return "production"
	}
	return "unknown"
}

// A Protocol can render itself as the lines of a sander input file.
// hasBox tells it whether the system is periodic, and seed is the
// random seed for the thermostat, with -1 meaning a time-based seed.
type Protocol interface {
	Kind() Kind
	Lines(hasBox bool, seed int) []string
}

// Minimisation is an energy minimisation protocol.
type Minimisation struct {
	// Steps is the maximum number of minimisation cycles.
	Steps int `toml:"steps"`
}

// NewMinimisation returns a minimisation protocol with the default
// number of steps.
func NewMinimisation() *Minimisation {
	return &Minimisation{Steps: 10000}
}

func (p *Minimisation) Kind() Kind {
	return KindMinimisation
}

func (p *Minimisation) Lines(hasBox bool, seed int) []string {
	l := []string{
		"Minimisation.",
		" &cntrl",
		"  imin=1,",
		fmt.Sprintf("  maxcyc=%d,", p.Steps),
		fmt.Sprintf("  ncyc=%d,", p.Steps/2),
	}
	l = append(l, cutLines(hasBox)...)
	l = append(l, " /")
	return l
}

// Equilibration heats or cools the system between two temperatures,
// optionally with the non-solvent atoms restrained.
type Equilibration struct {
	// Runtime is the simulation length in ns.
	Runtime float64 `toml:"runtime"`
	// TempStart and TempEnd are the initial and final temperatures
	// in K. Equal values give a constant temperature run.
	TempStart float64 `toml:"temp_start"`
	TempEnd   float64 `toml:"temp_end"`
	// Restrained restrains the heavy atoms of the solute.
	Restrained bool `toml:"restrained"`
}

// NewEquilibration returns a 0.2 ns unrestrained equilibration at a
// constant 300 K.
func NewEquilibration() *Equilibration {
	return &Equilibration{Runtime: 0.2, TempStart: 300, TempEnd: 300}
}

func (p *Equilibration) Kind() Kind {
	return KindEquilibration
}

func (p *Equilibration) Lines(hasBox bool, seed int) []string {
	steps := nsteps(p.Runtime)
	l := []string{
		"Equilibration.",
		" &cntrl",
		"  ig=" + fmt.Sprint(seed) + ",",
		"  ntc=2,",
		"  ntf=2,",
		fmt.Sprintf("  nstlim=%d,", steps),
		"  dt=0.002,",
		"  ntpr=100,",
		"  irest=0,",
		"  ntx=1,",
	}
	l = append(l, cutLines(hasBox)...)
	if p.Restrained {
		l = append(l,
			"  ntr=1,",
			"  restraint_wt=2,",
			`  restraintmask='!:WAT & !@H',`,
		)
	}
	if p.TempStart == p.TempEnd {
		l = append(l,
			"  ntt=3,",
			"  gamma_ln=2,",
			fmt.Sprintf("  temp0=%.2f,", p.TempEnd),
		)
	} else {
		l = append(l,
			"  ntt=3,",
			"  gamma_ln=2,",
			fmt.Sprintf("  tempi=%.2f,", p.TempStart),
			fmt.Sprintf("  temp0=%.2f,", p.TempEnd),
			"  nmropt=1,",
		)
	}
	l = append(l, " /")
	if p.TempStart != p.TempEnd {
		// a linear temperature ramp over the whole run
		l = append(l,
			" &wt",
			"  TYPE='TEMP0',",
			"  ISTEP1=0,",
			fmt.Sprintf("  ISTEP2=%d,", steps),
			fmt.Sprintf("  VALUE1=%.2f,", p.TempStart),
			fmt.Sprintf("  VALUE2=%.2f,", p.TempEnd),
			" /",
			" &wt",
			"  TYPE='END',",
			" /",
		)
	}
	return l
}

// Production is a free dynamics protocol that writes a trajectory.
type Production struct {
	// Runtime is the simulation length in ns.
	Runtime float64 `toml:"runtime"`
	// Temp is the thermostat temperature in K.
	Temp float64 `toml:"temp"`
	// NPT turns on pressure coupling. It needs a periodic system.
	NPT bool `toml:"npt"`
	// Frames is the number of trajectory frames to write over the
	// whole run.
	Frames int `toml:"frames"`
	// Restart continues from the velocities of a previous run.
	Restart bool `toml:"restart"`
}

// NewProduction returns a 1 ns NVT production at 300 K writing 20
// frames.
func NewProduction() *Production {
	return &Production{Runtime: 1, Temp: 300, Frames: 20}
}

func (p *Production) Kind() Kind {
	return KindProduction
}

func (p *Production) Lines(hasBox bool, seed int) []string {
	steps := nsteps(p.Runtime)
	interval := steps
	if p.Frames > 0 && p.Frames < steps {
		interval = steps / p.Frames
	}
	l := []string{
		"Production.",
		" &cntrl",
		"  ig=" + fmt.Sprint(seed) + ",",
		"  ntc=2,",
		"  ntf=2,",
		fmt.Sprintf("  nstlim=%d,", steps),
		"  dt=0.002,",
		fmt.Sprintf("  ntpr=%d,", interval),
		fmt.Sprintf("  ntwx=%d,", interval),
	}
	if p.Restart {
		l = append(l,
			"  irest=1,",
			"  ntx=5,",
		)
	} else {
		l = append(l,
			"  irest=0,",
			"  ntx=1,",
		)
	}
	l = append(l, cutLines(hasBox)...)
	if p.NPT && hasBox {
		l = append(l,
			"  ntp=1,",
			"  pres0=1.01325,",
		)
	}
	l = append(l,
		"  ntt=3,",
		"  gamma_ln=2,",
		fmt.Sprintf("  temp0=%.2f,", p.Temp),
		" /",
	)
	return l
}

// cutLines returns the non-bonded cutoff and boundary settings for a
// periodic or vacuum system.
func cutLines(hasBox bool) []string {
	if hasBox {
		return []string{
			"  cut=8.0,",
			"  ntb=1,",
		}
	}
	return []string{
		"  cut=999.,",
		"  ntb=0,",
		"  igb=6,",
	}
}

// nsteps converts a runtime in ns to a number of integration steps,
// rounding up so the requested time is always covered.
func nsteps(runtime float64) int {
	n := int(math.Ceil(runtime / timestep))
	if n < 1 {
		n = 1
	}
	return n
}

// Render joins the protocol lines into the content of an mdin file.
func Render(p Protocol, hasBox bool, seed int) string {
	return strings.Join(p.Lines(hasBox, seed), "\n") + "\n"
}
