// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pd implements the peridynamics solver: the per-bond force and
// failure kernels, the force/damage reductions, the explicit integrator
// and the time loop driving them.
package pd

import (
	"math"
	"runtime"

	"github.com/cpmech/gosl/chk"
)

// boundary condition type per degree of freedom
const (
	BcFree       = 0 // dof evolves with the solution
	BcPrescribed = 1 // dof follows the scaled boundary value
)

// broken marks a bond slot whose bond has failed (or was never used)
const broken = -1

// State holds all arrays describing one simulation. Nodal vector fields are
// flat with stride 3; bond tables hold Mhoriz slots per node. All arrays are
// allocated once at setup and persist for the whole run; the kernels never
// allocate.
type State struct {

	// sizes
	Nnodes int // number of nodes
	Mhoriz int // bond-slot capacity per node; must be a power of two

	// immutable nodal data
	X   []float64 // [3*nnodes] reference positions
	Vol []float64 // [nnodes] nodal volumes

	// mutable nodal data
	Un  []float64 // [3*nnodes] displacements
	Udn []float64 // [3*nnodes] velocity increments (reduced forces); fully overwritten each step
	Phi []float64 // [nnodes] damage; recomputed fresh each step

	// bond tables
	NList    []int     // [nnodes*mhoriz] neighbour ids; broken (-1) => failed bond or unused slot
	Stiff    []float64 // [nnodes*mhoriz] bond stiffness
	Crits    []float64 // [nnodes*mhoriz] bond critical stretch
	F        []float64 // [3*nnodes*mhoriz] per-bond force contributions; transient
	HorizLen []int     // [nnodes] original family size; never decremented on failure

	// boundary conditions
	DispBcTypes  []int     // [3*nnodes] displacement bc type per dof
	DispBcVals   []float64 // [3*nnodes] displacement bc magnitude per dof
	ForceBcTypes []int     // [3*nnodes] force bc type per dof
	ForceBcVals  []float64 // [3*nnodes] force bc magnitude per dof

	// per-worker reduction scratch; row iw belongs to dispatch worker iw.
	// The two reductions never run concurrently with each other, so they
	// share the rows.
	scratch [][]float64
}

// NewState allocates a state for nnodes nodes with mhoriz bond slots per
// node. All bond slots start broken/unused.
func NewState(nnodes, mhoriz int) (o *State) {
	o = new(State)
	o.Nnodes = nnodes
	o.Mhoriz = mhoriz
	ndof := 3 * nnodes
	nbonds := nnodes * mhoriz
	o.X = make([]float64, ndof)
	o.Vol = make([]float64, nnodes)
	o.Un = make([]float64, ndof)
	o.Udn = make([]float64, ndof)
	o.Phi = make([]float64, nnodes)
	o.NList = make([]int, nbonds)
	for b := 0; b < nbonds; b++ {
		o.NList[b] = broken
	}
	o.Stiff = make([]float64, nbonds)
	o.Crits = make([]float64, nbonds)
	o.F = make([]float64, 3*nbonds)
	o.HorizLen = make([]int, nnodes)
	o.DispBcTypes = make([]int, ndof)
	o.DispBcVals = make([]float64, ndof)
	o.ForceBcTypes = make([]int, ndof)
	o.ForceBcVals = make([]float64, ndof)
	nw := runtime.NumCPU()
	if nw < 1 {
		nw = 1
	}
	o.scratch = make([][]float64, nw)
	for iw := 0; iw < nw; iw++ {
		o.scratch[iw] = make([]float64, mhoriz)
	}
	return
}

// CheckSetup panics if the state violates the setup contract: the bond-slot
// capacity must be a power of two (the reductions halve over it), neighbour
// ids must be in range, families must be non-empty and no bond may have zero
// reference length. The kernels trust these invariants and never re-check.
func (o *State) CheckSetup() {
	if o.Mhoriz < 1 || o.Mhoriz&(o.Mhoriz-1) != 0 {
		chk.Panic("bond-slot capacity must be a power of two. mhoriz=%d is invalid", o.Mhoriz)
	}
	for i := 0; i < o.Nnodes; i++ {
		if o.HorizLen[i] < 1 || o.HorizLen[i] > o.Mhoriz {
			chk.Panic("node %d has family size %d outside [1, %d]", i, o.HorizLen[i], o.Mhoriz)
		}
		for j := 0; j < o.Mhoriz; j++ {
			n := o.NList[i*o.Mhoriz+j]
			if n == broken {
				continue
			}
			if n < 0 || n >= o.Nnodes || n == i {
				chk.Panic("bond (%d,%d) has invalid neighbour id %d", i, j, n)
			}
			if o.bondLen(i, n) < 1e-14 {
				chk.Panic("bond (%d,%d) connects coincident nodes %d and %d", i, j, i, n)
			}
		}
	}
}

// bondLen returns the reference length of the bond from node i to node n
func (o *State) bondLen(i, n int) float64 {
	dx := o.X[3*n] - o.X[3*i]
	dy := o.X[3*n+1] - o.X[3*i+1]
	dz := o.X[3*n+2] - o.X[3*i+2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
