// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read .sim file and derive tables")

	sim := ReadSim("data/twonode.sim", false, 0)
	if sim == nil {
		tst.Errorf("cannot read simulation file")
		return
	}
	io.Pforan("sim = %v\n", sim.GetInfo())

	// key and output directory
	chk.StrAssert(sim.Key, "twonode")
	chk.StrAssert(sim.DirOut, "/tmp/gopd/inp-twonode")

	// material
	chk.StrAssert(sim.Mat.Name, "brittle")
	chk.StrAssert(sim.Mat.Model, "pmb")
	chk.Scalar(tst, "c", 1e-17, sim.Mat.C, 1.0)
	chk.Scalar(tst, "s0", 1e-17, sim.Mat.S0, 0.025)

	// mesh and derived tables
	chk.IntAssert(sim.Mesh.Nnodes, 2)
	chk.IntAssert(sim.Mesh.Mhoriz, 2)
	chk.Ints(tst, "horizlen", sim.Mesh.HorizLen, []int{1, 1})
	chk.Vector(tst, "stiff", 1e-17, sim.Mesh.Stiff, []float64{1, 1, 1, 1})
	chk.Vector(tst, "crits", 1e-17, sim.Mesh.Crits, []float64{0.025, 0.025, 0.025, 0.025})

	// time control and load functions
	chk.StrAssert(sim.Control.Solver, "exp-euler")
	chk.Scalar(tst, "tf", 1e-17, sim.Control.Tf, 5)
	chk.Scalar(tst, "dt", 1e-17, sim.Control.DtFunc.F(0, nil), 1)
	chk.Scalar(tst, "dload", 1e-17, sim.Control.DloadFunc.F(3, nil), 0.01)
	chk.Scalar(tst, "fload", 1e-17, sim.Control.FloadFunc.F(3, nil), 0)

	// defaulted bc tables
	chk.IntAssert(len(sim.Bcs.ForceTypes), 6)
	chk.IntAssert(len(sim.Bcs.ForceVals), 6)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. goroutine id de-conflicts the simulation key")

	sim := ReadSim("data/twonode.sim", false, 3)
	chk.StrAssert(sim.Key, "twonode-g3")
	chk.IntAssert(sim.GoroutineId, 3)

	// id zero leaves the key untouched
	sim = ReadSim("data/twonode.sim", false, 0)
	chk.StrAssert(sim.Key, "twonode")
}

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01. derive micro-modulus and critical stretch")

	// E = 3000, delta = 0.5 => k = 2000
	mat := &Material{Name: "concrete", Prms: dbf.Params{
		&dbf.P{N: "E", V: 3000},
		&dbf.P{N: "delta", V: 0.5},
		&dbf.P{N: "Gc", V: 10},
	}}
	err := mat.Derive()
	if err != nil {
		tst.Errorf("Derive failed:\n%v", err)
		return
	}
	k := 2.0 * 3000.0 / 3.0
	chk.Scalar(tst, "c", 1e-12, mat.C, 18.0*k/(math.Pi*math.Pow(0.5, 4)))
	chk.Scalar(tst, "s0", 1e-12, mat.S0, math.Sqrt(5.0*10.0/(9.0*k*0.5)))
	chk.StrAssert(mat.Model, "pmb")
}

func Test_mat02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat02. incomplete material data fails")

	mat := &Material{Name: "bad", Prms: dbf.Params{&dbf.P{N: "E", V: 3000}}}
	err := mat.Derive()
	if err == nil {
		tst.Errorf("Derive should have failed without delta")
	}
}
