// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"github.com/cpmech/gopd/inp"
	"github.com/cpmech/gopd/mbond"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Domain holds the state, the bond model and the results of one simulation
type Domain struct {

	// input data
	Sim *inp.Simulation // input data

	// state and model
	Sta   *State      // all solution arrays
	Model mbond.Model // bond constitutive/failure law
	Dev   *Device     // OpenCL device; nil => run kernels on the CPU

	// results
	Hist *History // output-time history
}

// NewDomain builds a domain from the input data, copying the mesh and
// boundary condition tables into a fresh state so the input remains intact
func NewDomain(sim *inp.Simulation, verbose bool) (o *Domain, err error) {

	// new domain
	o = new(Domain)
	o.Sim = sim
	msh := &sim.Mesh

	// state
	o.Sta = NewState(msh.Nnodes, msh.Mhoriz)
	copy(o.Sta.X, msh.Coords)
	copy(o.Sta.Vol, msh.Vols)
	copy(o.Sta.NList, msh.Nlist)
	copy(o.Sta.Stiff, msh.Stiff)
	copy(o.Sta.Crits, msh.Crits)
	copy(o.Sta.HorizLen, msh.HorizLen)
	copy(o.Sta.DispBcTypes, sim.Bcs.DispTypes)
	copy(o.Sta.DispBcVals, sim.Bcs.DispVals)
	copy(o.Sta.ForceBcTypes, sim.Bcs.ForceTypes)
	copy(o.Sta.ForceBcVals, sim.Bcs.ForceVals)
	o.Sta.CheckSetup()

	// bond model
	mdlname := "pmb"
	if sim.Mat != nil {
		mdlname = sim.Mat.Model
	}
	o.Model, err = mbond.New(mdlname)
	if err != nil {
		return nil, chk.Err("cannot allocate bond model:\n%v", err)
	}
	if sim.Mat != nil {
		err = o.Model.Init(sim.Mat.Prms)
		if err != nil {
			return nil, chk.Err("cannot initialise bond model:\n%v", err)
		}
	}

	// OpenCL device (the device kernels implement the pmb law only)
	if sim.Data.Gpu && mdlname != "pmb" {
		if verbose {
			io.Pfyel("bond model %q has no device kernels; running on the CPU\n", mdlname)
		}
	} else if sim.Data.Gpu {
		o.Dev, err = NewDevice(o.Sta)
		if err != nil {
			if verbose {
				io.Pfyel("OpenCL device unavailable (%v); running on the CPU\n", err)
			}
			o.Dev = nil
			err = nil
		} else if verbose {
			io.Pf("running kernels on %q\n", o.Dev.Name())
		}
	}

	// history
	o.Hist = new(History)
	return
}

// Clean releases device resources, if any
func (o *Domain) Clean() {
	if o.Dev != nil {
		o.Dev.Close()
		o.Dev = nil
	}
}
