/*
 * records.go, part of mdkit.
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
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Record keys that get special treatment. All keys are stored
// upper-cased, as sander prints them.
const (
	KeyStep   = "NSTEP"
	KeyEnergy = "ENERGY"
	KeyTime   = "TIME(PS)"
	KeyEtot   = "ETOT"
)

// recordRE matches one KEY = NUMBER pair in an upper-cased sander
// energy line. Keys may carry digits, dashes and parentheses, as in
// "1-4 EEL" or "TIME(PS)".
var recordRE = regexp.MustCompile(`(\d*-*\d*\s*[A-Z]+\(*[A-Z]*\)*)\s*=\s*(-*\d+\.?\d*)`)

// Dialect selects how the energy file of a run is parsed.
// Minimisation output lays NSTEP and ENERGY out positionally under a
// header; dynamics output prints KEY = NUMBER pairs.
type Dialect int

const (
	Dynamics Dialect = iota
	Minimisation
)

// RecordStore accumulates the time series of every record found in
// the energy file of a run. Keys keep the order in which they were
// first seen. It is safe for concurrent use.
type RecordStore struct {
	mu   sync.Mutex
	keys []string
	vals map[string][]float64
}

// NewRecordStore returns an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{vals: map[string][]float64{}}
}

// Reset drops every record.
func (s *RecordStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = nil
	s.vals = map[string][]float64{}
}

// UpdateFromFile re-reads the energy file at path and appends any new
// frames to the store. The file is a snapshot that the engine
// rewrites in place, so a frame whose NSTEP equals the last stored
// one stops the read without appending anything.
func (s *RecordStore) UpdateFromFile(path string, d Dialect) error {
	fin, err := os.Open(path)
	if err != nil {
		return Error{message: err.Error(), filename: path, deco: []string{"UpdateFromFile"}, critical: false}
	}
	defer fin.Close()
	s.Update(fin, d)
	return nil
}

// Update parses sander energy output from r and appends the records
// found to the store.
func (s *RecordStore) Update(r io.Reader, d Dialect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	isHeader := false
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		// banner and timing lines
		if len(line) == 0 || line[0] == '|' {
			continue
		}
		upper := strings.ToUpper(line)
		if d == Minimisation {
			if !strings.Contains(upper, "=") {
				data := strings.Fields(upper)
				if len(data) > 0 && data[0] == KeyStep {
					isHeader = true
					continue
				}
				if isHeader {
					if len(data) >= 2 {
						step, err1 := strconv.ParseFloat(data[0], 64)
						energy, err2 := strconv.ParseFloat(data[1], 64)
						if err1 == nil && err2 == nil {
							if last, ok := s.last(KeyStep); ok && last == step {
								return
							}
							s.append(KeyStep, step)
							s.append(KeyEnergy, energy)
							isHeader = false
						}
					}
					continue
				}
			}
		}
		for _, m := range recordRE.FindAllStringSubmatch(upper, -1) {
			key := strings.TrimSpace(m[1])
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			if key == KeyStep {
				if last, ok := s.last(KeyStep); ok && last == val {
					return
				}
			}
			s.append(key, val)
		}
	}
}

func (s *RecordStore) append(key string, val float64) {
	if _, seen := s.vals[key]; !seen {
		s.keys = append(s.keys, key)
	}
	s.vals[key] = append(s.vals[key], val)
}

func (s *RecordStore) last(key string) (float64, bool) {
	v, ok := s.vals[key]
	if !ok || len(v) == 0 {
		return 0, false
	}
	return v[len(v)-1], true
}

// Latest returns the most recent value of key.
func (s *RecordStore) Latest(key string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last(key)
}

// Series returns a copy of the whole history of key.
func (s *RecordStore) Series(key string) ([]float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vals[key]
	if !ok {
		return nil, false
	}
	ret := make([]float64, len(v))
	copy(ret, v)
	return ret, true
}

// Keys returns the record keys in the order they were first seen.
func (s *RecordStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]string, len(s.keys))
	copy(ret, s.keys)
	return ret
}

// Empty reports whether no records have been stored yet.
func (s *RecordStore) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys) == 0
}
