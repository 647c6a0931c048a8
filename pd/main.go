// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"time"

	"github.com/cpmech/gopd/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for a simulation using the peridynamics solver
type Main struct {
	Sim     *inp.Simulation // simulation data
	Dom     *Domain         // state, model, results
	Solver  Solver          // time-loop solver; e.g. explicit Euler
	ShowMsg bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   erasePrev   -- erase previous results files
//   verbose     -- show messages
//   goroutineId -- id of goroutine to avoid problems with parallel runs
func NewMain(simfilepath string, erasePrev, verbose bool, goroutineId int) (o *Main) {

	// new Main object
	o = new(Main)
	o.ShowMsg = verbose

	// read input data
	o.Sim = inp.ReadSim(simfilepath, erasePrev, goroutineId)
	if o.ShowMsg {
		io.Pf("> Simulation (.sim) file read: %v\n", o.Sim.GetInfo())
	}

	// allocate domain
	var err error
	o.Dom, err = NewDomain(o.Sim, verbose)
	if err != nil {
		chk.Panic("cannot allocate domain:\n%v", err)
	}

	// allocate solver
	if alloc, ok := allocators[o.Sim.Control.Solver]; ok {
		o.Solver = alloc(o.Dom)
	} else {
		chk.Panic("cannot find solver type named %q", o.Sim.Control.Solver)
	}
	return
}

// Run runs the simulation
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Running solver\n")
	}

	// time loop
	err = o.Solver.Run(o.Sim.Control.Tf, o.Sim.Control.DtFunc, o.ShowMsg)
	return
}

// onexit cleans resources and prints the final message
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {
	o.Dom.Clean()
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	err = prevErr
	return
}
