// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"sync"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Solver implements the actual solver (time loop)
type Solver interface {
	Run(tf float64, dtFunc dbf.T, verbose bool) (err error)
}

// allocators holds all available solvers
var allocators = make(map[string]func(dom *Domain) Solver)

// ExpEuler is the explicit forward-Euler solver. Each step sequences the
// bond-force kernel, the force reduction and the displacement update; the
// damage reduction only reads bond state written by the force kernel, so it
// runs concurrently with the update.
type ExpEuler struct {
	dom     *Domain
	warned1 bool // 5% damage warning issued
	warned2 bool // 70% damage warning issued
}

// add solver to factory
func init() {
	allocators["exp-euler"] = func(dom *Domain) Solver { return &ExpEuler{dom: dom} }
}

// Run runs the time loop from 0 to tf
func (o *ExpEuler) Run(tf float64, dtFunc dbf.T, verbose bool) (err error) {

	d := o.dom
	ctl := &d.Sim.Control
	t := 0.0
	tout := ctl.DtOut
	step := 0

	for t < tf-1e-14 {

		// time and load scales
		dt := dtFunc.F(t, nil)
		t += dt
		step++
		dScale := ctl.DloadFunc.F(t, nil)
		fScale := ctl.FloadFunc.F(t, nil)

		// one step over all four kernels
		if d.Dev != nil {
			err = d.Dev.Step(dt, dScale, fScale)
			if err != nil {
				return
			}
		} else {
			d.Sta.BondForce(d.Model)
			d.Sta.ReduceForce(fScale)
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Sta.ReduceDamage()
			}()
			d.Sta.Integrate(dt, dScale)
			wg.Wait()
		}

		// output
		if t >= tout-1e-14 || t >= tf-1e-14 {
			if d.Dev != nil {
				err = d.Dev.Download()
				if err != nil {
					return
				}
			}
			d.Hist.Record(t, d.Sta, d.Sim.Bcs.Tips)
			if d.Sim.Data.WriteVtk {
				d.Sta.WriteVtk(d.Sim.DirOut, d.Sim.Key, step)
			}
			o.warn()
			if verbose {
				io.Pf("t=%12.6f dmgsum=%12.6f\n", t, d.Hist.DmgSum[len(d.Hist.DmgSum)-1])
			}
			tout += ctl.DtOut
		}
	}
	return
}

// warn prints (once per threshold) when a large fraction of bonds has broken.
// The thresholds are independent: one output record may fire both.
func (o *ExpEuler) warn() {
	n := len(o.dom.Hist.DmgSum)
	if n == 0 {
		return
	}
	dmgsum := o.dom.Hist.DmgSum[n-1]
	nnodes := float64(o.dom.Sta.Nnodes)
	if !o.warned1 && dmgsum > 0.05*nnodes {
		io.Pfyel("over 5%% of bonds have broken; simulation continuing\n")
		o.warned1 = true
	}
	if !o.warned2 && dmgsum > 0.7*nnodes {
		io.Pfyel("over 70%% of bonds have broken; simulation continuing\n")
		o.warned2 = true
	}
}
