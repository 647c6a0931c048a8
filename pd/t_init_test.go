// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// twoNodeState builds two nodes one unit apart along x, each owning one bond
// to the other in slot 0 (slot 1 unused)
func twoNodeState(stiff, crits float64) (o *State) {
	o = NewState(2, 2)
	copy(o.X, []float64{0, 0, 0, 1, 0, 0})
	o.Vol[0], o.Vol[1] = 1, 1
	o.NList[0] = 1 // node 0, slot 0
	o.NList[2] = 0 // node 1, slot 0
	o.HorizLen[0], o.HorizLen[1] = 1, 1
	for b := 0; b < 4; b++ {
		o.Stiff[b] = stiff
		o.Crits[b] = crits
	}
	return
}
