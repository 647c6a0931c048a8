// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbond

import "github.com/cpmech/gosl/fun/dbf"

// Elastic implements a linear bond that never fails. Useful to isolate the
// force/integration path from the failure path; e.g. when calibrating
// time-step sizes on a mesh before running the brittle law.
type Elastic struct{}

// add model to factory
func init() {
	allocators["elastic"] = func() Model { return new(Elastic) }
}

// Init initialises model
func (o *Elastic) Init(prms dbf.Params) (err error) {
	return
}

// GetPrms gets (an example) of parameters
func (o Elastic) GetPrms() dbf.Params {
	return dbf.Params{}
}

// Force returns the bond force magnitude
func (o Elastic) Force(stiff, vol, xiLen, yLen float64) float64 {
	return stiff * vol / xiLen * (yLen - xiLen)
}

// Failed always returns false
func (o Elastic) Failed(stretch, critStretch float64) bool {
	return false
}
