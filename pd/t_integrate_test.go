// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_integrate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("integrate01. forward Euler and prescribed ratchet")

	sta := NewState(2, 2)
	sta.HorizLen[0], sta.HorizLen[1] = 1, 1

	// free dof: u += dt*udn
	sta.Udn[0] = 2.0
	sta.Integrate(0.1, 0.5)
	chk.Scalar(tst, "u free", 1e-17, sta.Un[0], 0.2)

	// prescribed dof: u += dScale*value, dt and udn are ignored
	sta.Un[3] = 1.0
	sta.Udn[3] = 123.0
	sta.DispBcTypes[3] = BcPrescribed
	sta.DispBcVals[3] = 2.0
	sta.Integrate(0.1, 0.5)
	chk.Scalar(tst, "u prescribed", 1e-17, sta.Un[3], 2.0)

	// repeated steps accumulate the scaled value
	sta.Integrate(0.1, 0.5)
	chk.Scalar(tst, "u ratcheted", 1e-17, sta.Un[3], 3.0)
}
