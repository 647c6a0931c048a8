// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc     string `json:"desc"`     // description of simulation
	Matfile  string `json:"matfile"`  // materials file path; empty => use inline "materials" section
	Mat      string `json:"mat"`      // name of material to be used for all bonds
	DirOut   string `json:"dirout"`   // directory for output; e.g. /tmp/gopd
	WriteVtk bool   `json:"writevtk"` // write VTK point-cloud files at output times
	Gpu      bool   `json:"gpu"`      // run kernels on an OpenCL device (falls back to CPU if unavailable)
}

// Mesh holds the point cloud and the neighbour (horizon) table.
// All arrays are flat: nodal vectors have stride 3; bond tables have one
// entry per (node, bond-slot) pair with mhoriz slots per node.
type Mesh struct {

	// input data
	Nnodes int       `json:"nnodes"` // number of nodes
	Mhoriz int       `json:"mhoriz"` // bond-slot capacity per node; must be a power of two
	Coords []float64 `json:"coords"` // [3*nnodes] reference positions
	Vols   []float64 `json:"vols"`   // [nnodes] nodal volumes
	Nlist  []int     `json:"nlist"`  // [nnodes*mhoriz] neighbour ids; -1 => unused slot
	Stiff  []float64 `json:"stiff"`  // [nnodes*mhoriz] per-bond stiffness; empty => derive from material
	Crits  []float64 `json:"crits"`  // [nnodes*mhoriz] per-bond critical stretch; empty => derive from material

	// derived
	HorizLen []int // [nnodes] original family size of each node (counted from Nlist)
}

// BcsData holds per-node per-axis boundary conditions. Type arrays hold
// 0 (free) or 1 (prescribed); value arrays hold the prescribed magnitudes
// before scaling by the load functions.
type BcsData struct {
	DispTypes  []int     `json:"disptypes"`  // [3*nnodes] displacement bc type per dof
	DispVals   []float64 `json:"dispvals"`   // [3*nnodes] displacement bc magnitude per dof
	ForceTypes []int     `json:"forcetypes"` // [3*nnodes] force bc type per dof
	ForceVals  []float64 `json:"forcevals"`  // [3*nnodes] force bc magnitude per dof
	Tips       []int     `json:"tips"`       // [3*nnodes] 1 => dof tracked in tip history
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Tf       float64 `json:"tf"`       // final time
	Dt       float64 `json:"dt"`       // time step size (if constant)
	DtOut    float64 `json:"dtout"`    // time step size for output
	DtFcn    string  `json:"dtfcn"`    // time step size (function name)
	DloadFcn string  `json:"dloadfcn"` // displacement load scale (function name)
	FloadFcn string  `json:"floadfcn"` // force load scale (function name)
	Solver   string  `json:"solver"`   // solver type; empty => "exp-euler"

	// derived
	DtFunc    dbf.T // time step function
	DloadFunc dbf.T // displacement load scale function
	FloadFunc dbf.T // force load scale function
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data        `json:"data"`      // global information
	Functions FuncsData   `json:"functions"` // all functions
	Materials MatsData    `json:"materials"` // materials (inline database)
	Mesh      Mesh        `json:"mesh"`      // point cloud and horizon table
	Bcs       BcsData     `json:"bcs"`       // boundary conditions
	Control   TimeControl `json:"control"`   // time control

	// derived
	Key         string    // simulation key; e.g. mysim01a
	DirOut      string    // output directory
	Mat         *Material // material selected by Data.Mat
	GoroutineId int       // id of goroutine to avoid problems with parallel runs
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string, erasePrev bool, goroutineId int) *Simulation {

	// new sim
	var o Simulation
	o.GoroutineId = goroutineId

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key; parallel runs get distinct keys so their output
	// files do not collide
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	o.Key = io.FnKey(fn)
	if goroutineId > 0 {
		o.Key += io.Sf("-g%d", goroutineId)
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/gopd/" + o.Key
	}
	err = os.MkdirAll(o.DirOut, 0777)
	if err != nil {
		chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
	}

	// erase previous simulation results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*.vtk", o.DirOut, o.Key))
	}

	// materials: external file overrides inline section
	if o.Data.Matfile != "" {
		mats, err := ReadMat(dir, o.Data.Matfile)
		if err != nil {
			chk.Panic("ReadSim: cannot read materials file:\n%v", err)
		}
		o.Materials = mats
	}
	for _, m := range o.Materials {
		err = m.Derive()
		if err != nil {
			chk.Panic("ReadSim: cannot derive material %q constants:\n%v", m.Name, err)
		}
	}
	if o.Data.Mat != "" {
		o.Mat = o.Materials.Get(o.Data.Mat)
		if o.Mat == nil {
			chk.Panic("ReadSim: cannot find material named %q", o.Data.Mat)
		}
	}

	// time control functions
	if o.Control.Tf < 1e-14 {
		o.Control.Tf = 1
	}
	if o.Control.DtFcn == "" {
		if o.Control.Dt < 1e-14 {
			o.Control.Dt = 1
		}
		o.Control.DtFunc = &dbf.Cte{C: o.Control.Dt}
	} else {
		o.Control.DtFunc, err = o.Functions.Get(o.Control.DtFcn)
		if err != nil {
			chk.Panic("ReadSim: cannot get dt function:\n%v", err)
		}
	}
	if o.Control.DtOut < 1e-14 {
		o.Control.DtOut = o.Control.Tf
	}
	o.Control.DloadFunc, err = o.Functions.Get(o.Control.DloadFcn)
	if err != nil {
		chk.Panic("ReadSim: cannot get displacement load function:\n%v", err)
	}
	o.Control.FloadFunc, err = o.Functions.Get(o.Control.FloadFcn)
	if err != nil {
		chk.Panic("ReadSim: cannot get force load function:\n%v", err)
	}
	if o.Control.Solver == "" {
		o.Control.Solver = "exp-euler"
	}

	// derived mesh data
	err = o.Mesh.Derive(o.Mat)
	if err != nil {
		chk.Panic("ReadSim: mesh data is inconsistent:\n%v", err)
	}

	// default boundary conditions (all free)
	ndof := 3 * o.Mesh.Nnodes
	if len(o.Bcs.DispTypes) == 0 {
		o.Bcs.DispTypes = make([]int, ndof)
	}
	if len(o.Bcs.DispVals) == 0 {
		o.Bcs.DispVals = make([]float64, ndof)
	}
	if len(o.Bcs.ForceTypes) == 0 {
		o.Bcs.ForceTypes = make([]int, ndof)
	}
	if len(o.Bcs.ForceVals) == 0 {
		o.Bcs.ForceVals = make([]float64, ndof)
	}
	if len(o.Bcs.Tips) == 0 {
		o.Bcs.Tips = make([]int, ndof)
	}
	return &o
}

// Derive computes the horizon-length table and, if the per-bond stiffness
// and critical-stretch tables were not given, fills them from the material
// constants. mat may be nil only when both tables are present in the input.
func (o *Mesh) Derive(mat *Material) (err error) {

	// check sizes
	if o.Nnodes < 1 || o.Mhoriz < 1 {
		return chk.Err("nnodes=%d and mhoriz=%d must be positive", o.Nnodes, o.Mhoriz)
	}
	if len(o.Coords) != 3*o.Nnodes {
		return chk.Err("coords has %d entries. %d is correct", len(o.Coords), 3*o.Nnodes)
	}
	if len(o.Vols) != o.Nnodes {
		return chk.Err("vols has %d entries. %d is correct", len(o.Vols), o.Nnodes)
	}
	nbonds := o.Nnodes * o.Mhoriz
	if len(o.Nlist) != nbonds {
		return chk.Err("nlist has %d entries. %d is correct", len(o.Nlist), nbonds)
	}

	// family sizes
	o.HorizLen = make([]int, o.Nnodes)
	for i := 0; i < o.Nnodes; i++ {
		for j := 0; j < o.Mhoriz; j++ {
			if o.Nlist[i*o.Mhoriz+j] >= 0 {
				o.HorizLen[i]++
			}
		}
	}

	// per-bond tables from material constants
	if len(o.Stiff) == 0 {
		if mat == nil {
			return chk.Err("stiff table is absent and no material was selected")
		}
		o.Stiff = make([]float64, nbonds)
		for b := 0; b < nbonds; b++ {
			o.Stiff[b] = mat.C
		}
	}
	if len(o.Crits) == 0 {
		if mat == nil {
			return chk.Err("crits table is absent and no material was selected")
		}
		o.Crits = make([]float64, nbonds)
		for b := 0; b < nbonds; b++ {
			o.Crits[b] = mat.S0
		}
	}
	if len(o.Stiff) != nbonds {
		return chk.Err("stiff has %d entries. %d is correct", len(o.Stiff), nbonds)
	}
	if len(o.Crits) != nbonds {
		return chk.Err("crits has %d entries. %d is correct", len(o.Crits), nbonds)
	}
	return
}

// GetInfo returns formatted information about this simulation
func (o *Simulation) GetInfo() string {
	return io.Sf("%q: nnodes=%d mhoriz=%d tf=%g dt=%g solver=%q",
		o.Key, o.Mesh.Nnodes, o.Mesh.Mhoriz, o.Control.Tf, o.Control.Dt, o.Control.Solver)
}
