/*
 * accessors.go, part of mdkit.
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

	"gonum.org/v1/gonum/stat"
)

// Record returns the latest value of an energy record. The key is
// case insensitive. An unseen key returns (0, false); asking for
// records is never an error, there may simply be none yet.
func (p *Process) Record(key string) (float64, bool) {
	p.updateEnergy()
	return p.store.Latest(strings.ToUpper(strings.TrimSpace(key)))
}

// Series returns a copy of the whole history of an energy record.
func (p *Process) Series(key string) ([]float64, bool) {
	p.updateEnergy()
	return p.store.Series(strings.ToUpper(strings.TrimSpace(key)))
}

// Keys returns the record keys seen so far, in first-seen order.
func (p *Process) Keys() []string {
	p.updateEnergy()
	return p.store.Keys()
}

// Step returns the latest integration step.
func (p *Process) Step() (int, bool) {
	v, ok := p.Record(KeyStep)
	return int(v), ok
}

// Time returns the latest simulation time in ns. Minimisation runs
// have no meaningful time, so for them Time always reports false.
func (p *Process) Time() (float64, bool) {
	if p.dialect() == Minimisation {
		return 0, false
	}
	v, ok := p.Record(KeyTime)
	return v / 1000, ok
}

// TimeSeries returns the simulation time history in ns.
func (p *Process) TimeSeries() ([]float64, bool) {
	if p.dialect() == Minimisation {
		return nil, false
	}
	s, ok := p.Series(KeyTime)
	if !ok {
		return nil, false
	}
	for i := range s {
		s[i] /= 1000
	}
	return s, ok
}

// TotalEnergy returns the latest total energy in kcal/mol. The record
// holding it depends on the run: minimisation prints ENERGY,
// dynamics prints ETOT.
func (p *Process) TotalEnergy() (float64, bool) {
	if p.dialect() == Minimisation {
		return p.Record(KeyEnergy)
	}
	return p.Record(KeyEtot)
}

// The remaining accessors return the latest value of one specific
// sander record, in the units sander prints. The full history of any
// of them is available through Series with the same key.

func (p *Process) BondEnergy() (float64, bool) { return p.Record("BOND") }

func (p *Process) AngleEnergy() (float64, bool) { return p.Record("ANGLE") }

func (p *Process) DihedralEnergy() (float64, bool) { return p.Record("DIHED") }

func (p *Process) ElectrostaticEnergy() (float64, bool) { return p.Record("EELEC") }

func (p *Process) Electrostatic14Energy() (float64, bool) { return p.Record("1-4 EEL") }

func (p *Process) VanDerWaalsEnergy() (float64, bool) { return p.Record("VDWAALS") }

func (p *Process) NonBonded14Energy() (float64, bool) { return p.Record("1-4 NB") }

func (p *Process) HydrogenBondEnergy() (float64, bool) { return p.Record("EHBOND") }

func (p *Process) RestraintEnergy() (float64, bool) { return p.Record("RESTRAINT") }

func (p *Process) PotentialEnergy() (float64, bool) { return p.Record("EPTOT") }

func (p *Process) KineticEnergy() (float64, bool) { return p.Record("EKTOT") }

func (p *Process) COMKineticEnergy() (float64, bool) { return p.Record("EKCMT") }

func (p *Process) Virial() (float64, bool) { return p.Record("VIRIAL") }

func (p *Process) Temperature() (float64, bool) { return p.Record("TEMP(K)") }

func (p *Process) Pressure() (float64, bool) { return p.Record("PRESS") }

func (p *Process) Volume() (float64, bool) { return p.Record("VOLUME") }

func (p *Process) Density() (float64, bool) { return p.Record("DENSITY") }

// SeriesStats returns the mean and standard deviation of the whole
// history of a record.
func (p *Process) SeriesStats(key string) (mean, stdev float64, ok bool) {
	s, ok := p.Series(key)
	if !ok || len(s) == 0 {
		return 0, 0, false
	}
	mean = stat.Mean(s, nil)
	if len(s) > 1 {
		stdev = stat.StdDev(s, nil)
	}
	return mean, stdev, true
}
