// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbond

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_mbond01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mbond01. model factory")

	if _, err := New("pmb"); err != nil {
		tst.Errorf("cannot allocate pmb model:\n%v", err)
	}
	if _, err := New("elastic"); err != nil {
		tst.Errorf("cannot allocate elastic model:\n%v", err)
	}
	if _, err := New("unknown-model"); err == nil {
		tst.Errorf("allocating an unknown model should fail")
	}
}

func Test_pmb01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pmb01. prototype microelastic brittle law")

	model, err := New("pmb")
	if err != nil {
		tst.Errorf("cannot allocate model:\n%v", err)
		return
	}
	err = model.Init(model.GetPrms())
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	// force: stiff*vol/xiLen*(yLen-xiLen)
	chk.Scalar(tst, "tension", 1e-15, model.Force(2, 0.5, 1, 1.3), 0.3)
	chk.Scalar(tst, "compression", 1e-15, model.Force(2, 0.5, 1, 0.8), -0.2)
	chk.Scalar(tst, "unstretched", 1e-17, model.Force(2, 0.5, 1, 1), 0)

	// failure is strict
	if model.Failed(0.25, 0.25) {
		tst.Errorf("s == s0 must not fail")
	}
	if !model.Failed(0.250001, 0.25) {
		tst.Errorf("s > s0 must fail")
	}
	if model.Failed(-0.5, 0.25) {
		tst.Errorf("compression must not fail")
	}
}

func Test_elastic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elastic01. elastic law never fails")

	model, err := New("elastic")
	if err != nil {
		tst.Errorf("cannot allocate model:\n%v", err)
		return
	}
	chk.Scalar(tst, "tension", 1e-15, model.Force(2, 0.5, 1, 1.3), 0.3)
	if model.Failed(99, 0.25) {
		tst.Errorf("elastic bonds must not fail")
	}
}
