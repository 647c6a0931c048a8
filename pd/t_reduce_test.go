// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_reduce01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reduce01. force reduction with 4 slots")

	sta := NewState(1, 4)
	sta.HorizLen[0] = 4
	sta.F[0] = 1 // slot 0, axis x
	sta.F[3] = 2 // slot 1, axis x
	sta.F[6] = 3 // slot 2, axis x
	sta.F[9] = 4 // slot 3, axis x

	// free node: internal sum
	sta.ReduceForce(2.5)
	chk.Scalar(tst, "Udn x free", 1e-17, sta.Udn[0], 10)
	chk.Scalar(tst, "Udn y free", 1e-17, sta.Udn[1], 0)

	// prescribed force: internal sum is discarded
	sta.ForceBcTypes[0] = BcPrescribed
	sta.ForceBcVals[0] = 3
	sta.ReduceForce(2.5)
	chk.Scalar(tst, "Udn x prescribed", 1e-17, sta.Udn[0], 2.5*3)
}

func Test_reduce02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reduce02. tree reduction matches naive sum")

	scratch := make([]float64, 8)
	naive := 0.0
	for j := 0; j < 8; j++ {
		scratch[j] = 1.0 / float64(j+1)
		naive += scratch[j]
	}
	chk.Scalar(tst, "tree sum", 1e-14, treeReduce(scratch), naive)
}

func Test_reduce03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reduce03. Udn is fully overwritten each step")

	sta := NewState(1, 2)
	sta.HorizLen[0] = 1
	sta.Udn[0], sta.Udn[1], sta.Udn[2] = 99, 99, 99
	sta.ReduceForce(0)
	chk.Vector(tst, "Udn", 1e-17, sta.Udn, []float64{0, 0, 0})
}

func Test_reduce04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reduce04. reductions reuse worker scratch, no allocation")

	sta := twoNodeState(1.0, 0.25)
	sta.F[0], sta.F[6] = 1, -1
	n := testing.AllocsPerRun(100, func() {
		sta.reduceForceRange(0, 0, sta.Nnodes, 0.5)
		sta.damageRange(0, 0, sta.Nnodes)
	})
	if n > 0 {
		tst.Errorf("reductions allocated %g times per step", n)
	}
	chk.Scalar(tst, "Udn0 x", 1e-17, sta.Udn[0], 1)
	chk.Vector(tst, "Phi", 1e-17, sta.Phi, []float64{0, 0})
}
