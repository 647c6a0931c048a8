// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mbond implements constitutive and failure laws for peridynamic bonds
package mbond

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for bond constitutive/failure laws.
// Force returns the magnitude of the pairwise force for one bond given its
// stiffness, the neighbour's volume, the reference length xiLen and the
// deformed length yLen. Failed decides whether a bond with the given stretch
// and critical stretch must break.
type Model interface {
	Init(prms dbf.Params) (err error) // initialises model
	GetPrms() dbf.Params              // gets (an example) of parameters
	Force(stiff, vol, xiLen, yLen float64) float64
	Failed(stretch, critStretch float64) bool
}

// allocators holds all available bond models
var allocators = make(map[string]func() Model)

// New returns a new bond model
func New(name string) (model Model, err error) {
	if alloc, ok := allocators[name]; ok {
		model = alloc()
		return
	}
	err = chk.Err("cannot find bond model named %q", name)
	return
}
