// seehuhn.de/go/sketch - recognition of hand-drawn pen strokes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command export writes the sampled test strokes to a TOML file, for use by
// other recognizer implementations.  Run from the module root directory.
package main

import (
	"log"
	"maps"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"seehuhn.de/go/sketch/testcases"
)

const outFile = "testdata/testcases.toml"

type fixture struct {
	Strokes []tomlStroke `toml:"stroke"`
}

type tomlStroke struct {
	Name   string       `toml:"name"`
	Want   string       `toml:"want,omitempty"`
	Top    bool         `toml:"top,omitempty"`
	Points [][3]float64 `toml:"points"`
}

func main() {
	var out fixture
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, c := range testcases.All[category] {
			out.Strokes = append(out.Strokes, toTOML(category, c))
		}
	}

	f, err := os.Create(outFile)
	if err != nil {
		log.Fatal(err)
	}
	enc := toml.NewEncoder(f)
	enc.Indent = ""
	if err := enc.Encode(out); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}

func toTOML(category string, c testcases.Case) tomlStroke {
	s := c.Stroke()
	ts := tomlStroke{
		Name:   category + "_" + c.Name,
		Want:   c.Want,
		Top:    c.Top,
		Points: make([][3]float64, len(s)),
	}
	for i, p := range s {
		ts.Points[i] = [3]float64{p.X, p.Y, p.T}
	}
	return ts
}
