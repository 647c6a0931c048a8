// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbond

import "github.com/cpmech/gosl/fun/dbf"

// Pmb implements the prototype microelastic brittle law: linear pairwise
// force along the deformed bond and irreversible failure when the stretch
// exceeds the bond's critical stretch.
type Pmb struct{}

// add model to factory
func init() {
	allocators["pmb"] = func() Model { return new(Pmb) }
}

// Init initialises model
func (o *Pmb) Init(prms dbf.Params) (err error) {
	return
}

// GetPrms gets (an example) of parameters
func (o Pmb) GetPrms() dbf.Params {
	return dbf.Params{}
}

// Force returns the bond force magnitude
func (o Pmb) Force(stiff, vol, xiLen, yLen float64) float64 {
	return stiff * vol / xiLen * (yLen - xiLen)
}

// Failed returns whether the bond must break
func (o Pmb) Failed(stretch, critStretch float64) bool {
	return stretch > critStretch
}
