// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"bytes"

	"github.com/cpmech/gosl/io"
)

// History collects results at output times. Tip quantities are taken over
// the dofs flagged in the input's tips table: the mean displacement and the
// summed reduced force.
type History struct {
	T      []float64 // output times
	DmgSum []float64 // sum of damage over all nodes
	TipU   []float64 // mean displacement of tip dofs
	TipF   []float64 // summed reduced force of tip dofs
}

// Record appends one output record
func (o *History) Record(t float64, sta *State, tips []int) {
	dmgsum := 0.0
	for i := 0; i < sta.Nnodes; i++ {
		dmgsum += sta.Phi[i]
	}
	tipu, tipf := 0.0, 0.0
	ntip := 0
	for r := 0; r < 3*sta.Nnodes; r++ {
		if tips[r] == 1 {
			ntip++
			tipu += sta.Un[r]
			tipf += sta.Udn[r]
		}
	}
	if ntip > 0 {
		tipu /= float64(ntip)
	}
	o.T = append(o.T, t)
	o.DmgSum = append(o.DmgSum, dmgsum)
	o.TipU = append(o.TipU, tipu)
	o.TipF = append(o.TipF, tipf)
}

// WriteVtk writes the deformed point cloud with damage and displacement
// point data to a legacy-VTK file named <key>_<step>.vtk in dirout
func (o *State) WriteVtk(dirout, key string, step int) {

	// header and points
	var b bytes.Buffer
	io.Ff(&b, "# vtk DataFile Version 3.0\n")
	io.Ff(&b, "%s step %d\n", key, step)
	io.Ff(&b, "ASCII\n")
	io.Ff(&b, "DATASET POLYDATA\n")
	io.Ff(&b, "POINTS %d double\n", o.Nnodes)
	for i := 0; i < o.Nnodes; i++ {
		io.Ff(&b, "%g %g %g\n", o.X[3*i]+o.Un[3*i], o.X[3*i+1]+o.Un[3*i+1], o.X[3*i+2]+o.Un[3*i+2])
	}

	// point data
	io.Ff(&b, "POINT_DATA %d\n", o.Nnodes)
	io.Ff(&b, "SCALARS damage double 1\n")
	io.Ff(&b, "LOOKUP_TABLE default\n")
	for i := 0; i < o.Nnodes; i++ {
		io.Ff(&b, "%g\n", o.Phi[i])
	}
	io.Ff(&b, "VECTORS displacement double\n")
	for i := 0; i < o.Nnodes; i++ {
		io.Ff(&b, "%g %g %g\n", o.Un[3*i], o.Un[3*i+1], o.Un[3*i+2])
	}

	// save file
	io.WriteFileD(dirout, io.Sf("%s_%06d.vtk", key, step), &b)
}
