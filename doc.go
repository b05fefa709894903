/*
 * doc.go, part of mdkit.
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

// Package mdkit is a convenience layer for setting up and driving
// biomolecular simulations. The root package holds the molecule and
// topology types, the shared interfaces and the library-wide error
// conventions; the subpackages build on them:
//
//   - align matches atoms between molecules, superposes them and
//     merges them into alchemical end states.
//   - amber drives the sander engine and follows its output live.
//   - protocol describes simulation protocols and renders engine
//     input files.
//   - traj/mdcrd reads ASCII Amber trajectories.
//   - chemplot plots record series.
//   - xyz is the coordinate matrix everything else works on.
//
// Functions that can fail return explicit errors; errors carry a
// decoration stack naming the call path, and trajectory reads signal
// a normal end of file with a benign error satisfying LastFrameError.
package mdkit
