/*
 * load.go, part of mdkit.
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

package protocol

import (
	"fmt"

	"github.com/pelletier/go-toml"
)

// Load reads a protocol from a TOML file. The file holds a single
// section named after the protocol kind, with the fields of the
// corresponding type; absent fields keep their defaults.
func Load(path string) (Protocol, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("protocol: %w", err)
	}
	present := 0
	var p Protocol
	var section string
	for name, fresh := range map[string]Protocol{
		"minimisation":  NewMinimisation(),
		"equilibration": NewEquilibration(),
		"production":    NewProduction(),
	} {
		if tree.Has(name) {
			present++
			p = fresh
			section = name
		}
	}
	if present != 1 {
		return nil, fmt.Errorf("protocol: %s must hold exactly one protocol section, has %d", path, present)
	}
	sub, ok := tree.Get(section).(*toml.Tree)
	if !ok {
		return nil, fmt.Errorf("protocol: %s: %s is not a section", path, section)
	}
	if err := sub.Unmarshal(p); err != nil {
		return nil, fmt.Errorf("protocol: %w", err)
	}
	return p, nil
}
