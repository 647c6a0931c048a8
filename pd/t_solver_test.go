// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"testing"

	"github.com/cpmech/gopd/mbond"
	"github.com/cpmech/gosl/chk"
)

func Test_solver01(tst *testing.T) {

	/* Two nodes one unit apart. Node 0 is held fixed; node 1 is pulled
	 * along x by a displacement bc ratcheting 0.01 per step. The stretch
	 * seen by the bond-force kernel at step k is 0.01*(k-1), so with a
	 * critical stretch of 0.025 the bond must break during step 4 and
	 * both nodes must show full damage from then on. */

	//verbose()
	chk.PrintTitle("solver01. two-node fracture end to end")

	analysis := NewMain("data/twonode.sim", true, chk.Verbose, 0)
	err := analysis.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	dom := analysis.Dom

	// bond is broken on both endpoints
	chk.IntAssert(dom.Sta.NList[0], -1)
	chk.IntAssert(dom.Sta.NList[2], -1)

	// damage reached 1 on both nodes
	chk.Vector(tst, "Phi", 1e-17, dom.Sta.Phi, []float64{1, 1})

	// prescribed displacement keeps ratcheting after failure
	chk.Scalar(tst, "u1x", 1e-15, dom.Sta.Un[3], 0.05)
	chk.Scalar(tst, "u0x", 1e-17, dom.Sta.Un[0], 0)

	// history: one record per step; damage sum flips from 0 to 2 at t=4
	chk.IntAssert(len(dom.Hist.T), 5)
	chk.Vector(tst, "dmgsum", 1e-17, dom.Hist.DmgSum, []float64{0, 0, 0, 2, 2})
	chk.Vector(tst, "tip u", 1e-15, dom.Hist.TipU, []float64{0.01, 0.02, 0.03, 0.04, 0.05})

	// the record at t=4 crosses both break thresholds at once; both
	// warnings must fire, quiet run or not
	solver := analysis.Solver.(*ExpEuler)
	if !solver.warned1 || !solver.warned2 {
		tst.Errorf("break warnings did not fire: 5%%=%v 70%%=%v", solver.warned1, solver.warned2)
	}
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. exact break step of the bond")

	// drive the kernels by hand to watch the step where failure lands
	sta := twoNodeState(1.0, 0.025)
	sta.DispBcTypes[0], sta.DispBcTypes[1], sta.DispBcTypes[2] = 1, 1, 1
	sta.DispBcTypes[3] = 1
	sta.DispBcVals[3] = 1.0
	sta.CheckSetup()
	model, _ := mbond.New("pmb")

	breakStep := -1
	for step := 1; step <= 5; step++ {
		sta.BondForce(model)
		sta.ReduceForce(0)
		sta.ReduceDamage()
		sta.Integrate(1, 0.01)
		if breakStep < 0 && sta.NList[0] == -1 {
			breakStep = step
		}
	}

	// stretch at step k is 0.01*(k-1): 0.03 > 0.025 first happens at k=4
	chk.IntAssert(breakStep, 4)
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. elastic bonds never break under the same load")

	sta := twoNodeState(1.0, 0.025)
	sta.DispBcTypes[0], sta.DispBcTypes[1], sta.DispBcTypes[2] = 1, 1, 1
	sta.DispBcTypes[3] = 1
	sta.DispBcVals[3] = 1.0
	model, _ := mbond.New("elastic")

	for step := 1; step <= 10; step++ {
		sta.BondForce(model)
		sta.ReduceForce(0)
		sta.ReduceDamage()
		sta.Integrate(1, 0.01)
	}
	chk.IntAssert(sta.NList[0], 1)
	chk.Vector(tst, "Phi", 1e-17, sta.Phi, []float64{0, 0})
}
