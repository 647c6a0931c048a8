//go:build opencl

// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// Device runs the four kernels on an OpenCL device. The whole state is
// uploaded once at construction; only the per-step scalars travel to the
// device afterwards, and Download reads the mutated arrays back. The device
// kernels implement the pmb law only.
type Device struct {
	sta     *State
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kBond   *cl.Kernel
	kForce  *cl.Kernel
	kInt    *cl.Kernel
	kDmg    *cl.Kernel

	xBuf     *cl.MemObject
	unBuf    *cl.MemObject
	udnBuf   *cl.MemObject
	volBuf   *cl.MemObject
	stiffBuf *cl.MemObject
	critsBuf *cl.MemObject
	nlistBuf *cl.MemObject
	fBuf     *cl.MemObject
	hlenBuf  *cl.MemObject
	phiBuf   *cl.MemObject
	scrBuf   *cl.MemObject
	dbctBuf  *cl.MemObject
	dbcvBuf  *cl.MemObject
	fbctBuf  *cl.MemObject
	fbcvBuf  *cl.MemObject
	prmBuf   *cl.MemObject

	nlist32 []int32
	hlen32  []int32
	params  []float64
	device  *cl.Device
}

const kernelSource = `
#pragma OPENCL EXTENSION cl_khr_fp64 : enable

__kernel void bond_force(
    const int mhoriz,
    __global const double* x,
    __global const double* un,
    __global const double* vol,
    __global const double* stiff,
    __global const double* crits,
    __global int* nlist,
    __global double* f)
{
    int b = get_global_id(0);
    int i = b / mhoriz;
    int n = nlist[b];
    if (n < 0) {
        f[3*b] = 0.0;
        f[3*b+1] = 0.0;
        f[3*b+2] = 0.0;
        return;
    }
    double xi[3];
    double xieta[3];
    for (int a = 0; a < 3; a++) {
        xi[a] = x[3*n+a] - x[3*i+a];
        xieta[a] = xi[a] + un[3*n+a] - un[3*i+a];
    }
    double xilen = sqrt(xi[0]*xi[0] + xi[1]*xi[1] + xi[2]*xi[2]);
    double y = sqrt(xieta[0]*xieta[0] + xieta[1]*xieta[1] + xieta[2]*xieta[2]);
    double s = (y - xilen) / xilen;
    double mag = stiff[b] * vol[n] / xilen * (y - xilen);
    for (int a = 0; a < 3; a++) {
        f[3*b+a] = mag * xieta[a] / y;
    }
    if (s > crits[b]) {
        nlist[b] = -1;
    }
}

/* pairwise halving over the force slots of one (node, axis) pair; destroys
   f, which bond_force fully rewrites next step. params = {dt, dscale, fscale} */
__kernel void reduce_force(
    const int mhoriz,
    __global const double* params,
    __global double* f,
    __global const int* fbctypes,
    __global const double* fbcvals,
    __global double* udn)
{
    int r = get_global_id(0);
    int i = r / 3;
    int a = r % 3;
    if (fbctypes[r] == 1) {
        udn[r] = params[2] * fbcvals[r];
        return;
    }
    for (int h = mhoriz / 2; h > 0; h /= 2) {
        for (int k = 0; k < h; k++) {
            f[3*(i*mhoriz+k)+a] += f[3*(i*mhoriz+k+h)+a];
        }
    }
    udn[r] = f[3*i*mhoriz+a];
}

__kernel void integrate(
    __global const double* params,
    __global const double* udn,
    __global const int* dbctypes,
    __global const double* dbcvals,
    __global double* un)
{
    int r = get_global_id(0);
    if (dbctypes[r] == 1) {
        un[r] += params[1] * dbcvals[r];
    } else {
        un[r] += params[0] * udn[r];
    }
}

__kernel void damage(
    const int mhoriz,
    __global const int* nlist,
    __global const int* horizlen,
    __global double* scratch,
    __global double* phi)
{
    int i = get_global_id(0);
    __global double* s = scratch + i * mhoriz;
    for (int j = 0; j < mhoriz; j++) {
        s[j] = (nlist[i*mhoriz+j] < 0) ? 0.0 : 1.0;
    }
    for (int h = mhoriz / 2; h > 0; h /= 2) {
        for (int k = 0; k < h; k++) {
            s[k] += s[k+h];
        }
    }
    phi[i] = 1.0 - s[0] / (double)horizlen[i];
}`

// NewDevice uploads the state to the first available OpenCL device
func NewDevice(sta *State) (o *Device, err error) {

	// find a device
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, fmt.Errorf("querying OpenCL platforms: %w", err)
	}
	var device *cl.Device
	for _, p := range platforms {
		devices, derr := p.GetDevices(cl.DeviceTypeGPU)
		if derr != nil && derr != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			device = devices[0]
			break
		}
	}
	if device == nil {
		for _, p := range platforms {
			devices, derr := p.GetDevices(cl.DeviceTypeCPU)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				device = devices[0]
				break
			}
		}
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	o = &Device{sta: sta, device: device}
	o.context, err = cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	o.queue, err = o.context.CreateCommandQueue(device, 0)
	if err != nil {
		o.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	o.program, err = o.context.CreateProgramWithSource([]string{kernelSource})
	if err != nil {
		o.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err = o.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		o.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if o.kBond, err = o.program.CreateKernel("bond_force"); err != nil {
		o.Close()
		return nil, fmt.Errorf("creating bond_force kernel: %w", err)
	}
	if o.kForce, err = o.program.CreateKernel("reduce_force"); err != nil {
		o.Close()
		return nil, fmt.Errorf("creating reduce_force kernel: %w", err)
	}
	if o.kInt, err = o.program.CreateKernel("integrate"); err != nil {
		o.Close()
		return nil, fmt.Errorf("creating integrate kernel: %w", err)
	}
	if o.kDmg, err = o.program.CreateKernel("damage"); err != nil {
		o.Close()
		return nil, fmt.Errorf("creating damage kernel: %w", err)
	}

	// buffers
	err = o.createBuffers()
	if err != nil {
		o.Close()
		return nil, err
	}

	// upload state and set static kernel arguments
	err = o.upload()
	if err != nil {
		o.Close()
		return nil, err
	}
	err = o.setArgs()
	if err != nil {
		o.Close()
		return nil, err
	}
	return o, nil
}

// Name returns the device name
func (o *Device) Name() string {
	return o.device.Name()
}

func (o *Device) createBuffers() (err error) {
	nnodes := o.sta.Nnodes
	nbonds := nnodes * o.sta.Mhoriz
	ndof := 3 * nnodes
	fsz := int(unsafe.Sizeof(float64(0)))
	isz := int(unsafe.Sizeof(int32(0)))
	mk := func(flag cl.MemFlag, bytes int) *cl.MemObject {
		if err != nil {
			return nil
		}
		var buf *cl.MemObject
		buf, err = o.context.CreateEmptyBuffer(flag, bytes)
		return buf
	}
	o.xBuf = mk(cl.MemReadOnly, ndof*fsz)
	o.unBuf = mk(cl.MemReadWrite, ndof*fsz)
	o.udnBuf = mk(cl.MemReadWrite, ndof*fsz)
	o.volBuf = mk(cl.MemReadOnly, nnodes*fsz)
	o.stiffBuf = mk(cl.MemReadOnly, nbonds*fsz)
	o.critsBuf = mk(cl.MemReadOnly, nbonds*fsz)
	o.nlistBuf = mk(cl.MemReadWrite, nbonds*isz)
	o.fBuf = mk(cl.MemReadWrite, 3*nbonds*fsz)
	o.hlenBuf = mk(cl.MemReadOnly, nnodes*isz)
	o.phiBuf = mk(cl.MemReadWrite, nnodes*fsz)
	o.scrBuf = mk(cl.MemReadWrite, nbonds*fsz)
	o.dbctBuf = mk(cl.MemReadOnly, ndof*isz)
	o.dbcvBuf = mk(cl.MemReadOnly, ndof*fsz)
	o.fbctBuf = mk(cl.MemReadOnly, ndof*isz)
	o.fbcvBuf = mk(cl.MemReadOnly, ndof*fsz)
	o.prmBuf = mk(cl.MemReadOnly, 3*fsz)
	if err != nil {
		return fmt.Errorf("allocating device buffers: %w", err)
	}
	return
}

func (o *Device) upload() (err error) {
	s := o.sta
	o.nlist32 = make([]int32, len(s.NList))
	for b, n := range s.NList {
		o.nlist32[b] = int32(n)
	}
	o.hlen32 = make([]int32, len(s.HorizLen))
	for i, h := range s.HorizLen {
		o.hlen32[i] = int32(h)
	}
	dbct := intsTo32(s.DispBcTypes)
	fbct := intsTo32(s.ForceBcTypes)
	o.params = make([]float64, 3)

	wf := func(buf *cl.MemObject, data []float64) {
		if err != nil || len(data) == 0 {
			return
		}
		_, err = o.queue.EnqueueWriteBuffer(buf, true, 0, 8*len(data), unsafe.Pointer(&data[0]), nil)
	}
	wi := func(buf *cl.MemObject, data []int32) {
		if err != nil || len(data) == 0 {
			return
		}
		_, err = o.queue.EnqueueWriteBuffer(buf, true, 0, 4*len(data), unsafe.Pointer(&data[0]), nil)
	}
	wf(o.xBuf, s.X)
	wf(o.unBuf, s.Un)
	wf(o.udnBuf, s.Udn)
	wf(o.volBuf, s.Vol)
	wf(o.stiffBuf, s.Stiff)
	wf(o.critsBuf, s.Crits)
	wi(o.nlistBuf, o.nlist32)
	wi(o.hlenBuf, o.hlen32)
	wf(o.dbcvBuf, s.DispBcVals)
	wf(o.fbcvBuf, s.ForceBcVals)
	wi(o.dbctBuf, dbct)
	wi(o.fbctBuf, fbct)
	if err != nil {
		return fmt.Errorf("uploading state: %w", err)
	}
	return
}

func (o *Device) setArgs() (err error) {
	m := int32(o.sta.Mhoriz)
	if err = o.kBond.SetArgs(m, o.xBuf, o.unBuf, o.volBuf, o.stiffBuf, o.critsBuf, o.nlistBuf, o.fBuf); err != nil {
		return fmt.Errorf("setting bond_force arguments: %w", err)
	}
	if err = o.kForce.SetArgs(m, o.prmBuf, o.fBuf, o.fbctBuf, o.fbcvBuf, o.udnBuf); err != nil {
		return fmt.Errorf("setting reduce_force arguments: %w", err)
	}
	if err = o.kInt.SetArgs(o.prmBuf, o.udnBuf, o.dbctBuf, o.dbcvBuf, o.unBuf); err != nil {
		return fmt.Errorf("setting integrate arguments: %w", err)
	}
	if err = o.kDmg.SetArgs(m, o.nlistBuf, o.hlenBuf, o.scrBuf, o.phiBuf); err != nil {
		return fmt.Errorf("setting damage arguments: %w", err)
	}
	return
}

// Step runs one time step on the device. The queue is in-order, so each
// enqueue acts as the completion barrier for the previous kernel.
func (o *Device) Step(dt, dScale, fScale float64) (err error) {
	o.params[0] = dt
	o.params[1] = dScale
	o.params[2] = fScale
	if _, err = o.queue.EnqueueWriteBuffer(o.prmBuf, true, 0, 24, unsafe.Pointer(&o.params[0]), nil); err != nil {
		return fmt.Errorf("writing step parameters: %w", err)
	}
	nnodes := o.sta.Nnodes
	nbonds := nnodes * o.sta.Mhoriz
	if _, err = o.queue.EnqueueNDRangeKernel(o.kBond, nil, []int{nbonds}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing bond_force: %w", err)
	}
	if _, err = o.queue.EnqueueNDRangeKernel(o.kForce, nil, []int{3 * nnodes}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing reduce_force: %w", err)
	}
	if _, err = o.queue.EnqueueNDRangeKernel(o.kInt, nil, []int{3 * nnodes}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing integrate: %w", err)
	}
	if _, err = o.queue.EnqueueNDRangeKernel(o.kDmg, nil, []int{nnodes}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing damage: %w", err)
	}
	return
}

// Download reads the mutated arrays back into the state
func (o *Device) Download() (err error) {
	s := o.sta
	rf := func(buf *cl.MemObject, data []float64) {
		if err != nil {
			return
		}
		_, err = o.queue.EnqueueReadBuffer(buf, true, 0, 8*len(data), unsafe.Pointer(&data[0]), nil)
	}
	rf(o.unBuf, s.Un)
	rf(o.udnBuf, s.Udn)
	rf(o.phiBuf, s.Phi)
	if err == nil {
		_, err = o.queue.EnqueueReadBuffer(o.nlistBuf, true, 0, 4*len(o.nlist32), unsafe.Pointer(&o.nlist32[0]), nil)
	}
	if err != nil {
		return fmt.Errorf("downloading state: %w", err)
	}
	for b, n := range o.nlist32 {
		s.NList[b] = int(n)
	}
	return
}

// Close releases device resources
func (o *Device) Close() {
	rel := func(buf *cl.MemObject) {
		if buf != nil {
			buf.Release()
		}
	}
	rel(o.xBuf)
	rel(o.unBuf)
	rel(o.udnBuf)
	rel(o.volBuf)
	rel(o.stiffBuf)
	rel(o.critsBuf)
	rel(o.nlistBuf)
	rel(o.fBuf)
	rel(o.hlenBuf)
	rel(o.phiBuf)
	rel(o.scrBuf)
	rel(o.dbctBuf)
	rel(o.dbcvBuf)
	rel(o.fbctBuf)
	rel(o.fbcvBuf)
	rel(o.prmBuf)
	if o.kBond != nil {
		o.kBond.Release()
	}
	if o.kForce != nil {
		o.kForce.Release()
	}
	if o.kInt != nil {
		o.kInt.Release()
	}
	if o.kDmg != nil {
		o.kDmg.Release()
	}
	if o.program != nil {
		o.program.Release()
	}
	if o.queue != nil {
		o.queue.Release()
	}
	if o.context != nil {
		o.context.Release()
	}
}

func intsTo32(a []int) (b []int32) {
	b = make([]int32, len(a))
	for i, v := range a {
		b[i] = int32(v)
	}
	return
}
