//go:build !opencl

// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import "errors"

// Device is a placeholder when OpenCL support is compiled out
type Device struct{}

// NewDevice always fails without the opencl build tag
func NewDevice(sta *State) (*Device, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

// Step is never reachable without the opencl build tag
func (o *Device) Step(dt, dScale, fScale float64) error {
	return errors.New("OpenCL device unavailable")
}

// Download is never reachable without the opencl build tag
func (o *Device) Download() error {
	return errors.New("OpenCL device unavailable")
}

// Name returns an empty string
func (o *Device) Name() string { return "" }

// Close does nothing
func (o *Device) Close() {}
