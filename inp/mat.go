// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Material holds material data for the bond-based model. The micro-modulus
// C and the critical stretch S0 may be given directly; otherwise they are
// derived from the engineering constants E, Gc and the horizon radius Delta
// (Poisson's ratio is fixed at 1/4 by the bond-based formulation).
type Material struct {

	// input
	Name  string     `json:"name"`  // name of material
	Model string     `json:"model"` // name of bond model; e.g. "pmb", "elastic"
	Prms  dbf.Params `json:"prms"`  // E, rho, delta, Gc, c, s0

	// derived
	E     float64 // Young's modulus
	Rho   float64 // density
	Delta float64 // horizon radius
	Gc    float64 // critical energy release rate
	C     float64 // bond micro-modulus (stiffness per unit volume squared)
	S0    float64 // critical stretch
}

// MatsData holds materials
type MatsData []*Material

// Get returns material by name; nil if not found
func (o MatsData) Get(name string) *Material {
	for _, m := range o {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ReadMat reads a materials database from a JSON file with a "materials" list
func ReadMat(dir, fn string) (mats MatsData, err error) {
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}
	var db struct {
		Materials MatsData `json:"materials"`
	}
	err = json.Unmarshal(b, &db)
	if err != nil {
		return nil, err
	}
	return db.Materials, nil
}

// Derive computes C and S0 from the engineering constants, unless they were
// given explicitly in Prms.
func (o *Material) Derive() (err error) {

	// read parameters
	for _, p := range o.Prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "rho":
			o.Rho = p.V
		case "delta":
			o.Delta = p.V
		case "Gc":
			o.Gc = p.V
		case "c":
			o.C = p.V
		case "s0":
			o.S0 = p.V
		}
	}

	// default model
	if o.Model == "" {
		o.Model = "pmb"
	}

	// bulk modulus with nu = 1/4
	k := 2.0 * o.E / 3.0

	// micro-modulus: c = 18 k / (pi delta^4)
	if o.C == 0 {
		if o.E == 0 || o.Delta == 0 {
			return chk.Err("cannot derive micro-modulus: either c or both E and delta must be given")
		}
		o.C = 18.0 * k / (math.Pi * math.Pow(o.Delta, 4.0))
	}

	// critical stretch: s0 = sqrt(5 Gc / (9 k delta))
	if o.S0 == 0 {
		if o.Gc == 0 || o.E == 0 || o.Delta == 0 {
			return chk.Err("cannot derive critical stretch: either s0 or E, Gc and delta must be given")
		}
		o.S0 = math.Sqrt(5.0 * o.Gc / (9.0 * k * o.Delta))
	}
	return
}

// String prints one material
func (o *Material) String() string {
	return io.Sf("{\"name\":%q, \"model\":%q, \"c\":%g, \"s0\":%g}", o.Name, o.Model, o.C, o.S0)
}
