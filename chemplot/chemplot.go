/*
 * chemplot.go, part of mdkit.
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

// Package chemplot plots simulation record series.
package chemplot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// A Recorder hands out the history of named simulation records. The
// amber process type satisfies it.
type Recorder interface {
	Series(key string) ([]float64, bool)
}

// EnergySeries plots the whole history of one record of a run as a
// line against the frame number, and saves it to filename. The format
// follows the file extension (png, svg, pdf among others).
func EnergySeries(rec Recorder, key, filename string) error {
	series, ok := rec.Series(key)
	if !ok || len(series) == 0 {
		return Error{message: "no records for key " + key, critical: true}
	}
	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}
	return XY(xs, series, key, "frame", key, filename)
}

// XY plots ys against xs as a single line and saves it to filename.
// Both slices must have the same length.
func XY(xs, ys []float64, title, xlabel, ylabel, filename string) error {
	if len(xs) != len(ys) {
		return Error{message: "x and y series differ in length", critical: true}
	}
	if len(xs) == 0 {
		return Error{message: "nothing to plot", critical: true}
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return Error{message: err.Error(), deco: []string{"XY"}, critical: true}
	}
	p.Add(line)
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, filename); err != nil {
		return Error{message: err.Error(), filename: filename, deco: []string{"XY"}, critical: true}
	}
	return nil
}

// Error implements the mdkit.Error interface for the chemplot
// package.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return "chemplot error: " + err.message
}

func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err Error) Critical() bool { return err.critical }
