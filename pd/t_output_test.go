// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_vtk01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vtk01. legacy-VTK point cloud output")

	sta := twoNodeState(1.0, 0.025)
	sta.Un[3] = 0.5
	sta.Phi[1] = 1
	sta.WriteVtk("/tmp/gopd", "vtk01", 3)

	b, err := io.ReadFile("/tmp/gopd/vtk01_000003.vtk")
	if err != nil {
		tst.Errorf("cannot read vtk file:\n%v", err)
		return
	}
	lines := strings.Split(string(b), "\n")
	chk.StrAssert(lines[0], "# vtk DataFile Version 3.0")
	chk.StrAssert(lines[3], "DATASET POLYDATA")
	chk.StrAssert(lines[4], "POINTS 2 double")
	chk.StrAssert(lines[5], "0 0 0")
	chk.StrAssert(lines[6], "1.5 0 0") // deformed position
	chk.StrAssert(lines[7], "POINT_DATA 2")
	chk.StrAssert(lines[10], "0")
	chk.StrAssert(lines[11], "1")
}

func Test_hist01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hist01. tip history bookkeeping")

	sta := twoNodeState(1.0, 0.025)
	sta.Un[3] = 0.04
	sta.Udn[3] = -0.25
	tips := make([]int, 6)
	tips[3] = 1

	var hist History
	hist.Record(2.5, sta, tips)
	chk.IntAssert(len(hist.T), 1)
	chk.Scalar(tst, "t", 1e-17, hist.T[0], 2.5)
	chk.Scalar(tst, "tip u", 1e-17, hist.TipU[0], 0.04)
	chk.Scalar(tst, "tip f", 1e-17, hist.TipF[0], -0.25)
	chk.Scalar(tst, "dmgsum", 1e-17, hist.DmgSum[0], 0)
}
