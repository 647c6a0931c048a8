// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"math"

	"github.com/cpmech/gopd/mbond"
)

// BondForce computes the force contribution of every bond slot and applies
// the failure check. Broken/unused slots contribute (0,0,0) and are not
// re-evaluated. Failure is detected after the force is written: an
// over-stretched bond still contributes this step and only becomes inert
// from the next step on. Each (node, slot) pair owns its force slot and its
// own NList entry, so the loop needs no synchronisation beyond the final
// barrier.
func (o *State) BondForce(model mbond.Model) {
	dispatchNodes(o.Nnodes, func(iw, ilo, ihi int) {
		for i := ilo; i < ihi; i++ {
			for j := 0; j < o.Mhoriz; j++ {
				b := i*o.Mhoriz + j
				n := o.NList[b]
				if n == broken {
					o.F[3*b] = 0
					o.F[3*b+1] = 0
					o.F[3*b+2] = 0
					continue
				}

				// reference and deformed bond vectors
				var xi, xieta [3]float64
				for a := 0; a < 3; a++ {
					xi[a] = o.X[3*n+a] - o.X[3*i+a]
					xieta[a] = xi[a] + o.Un[3*n+a] - o.Un[3*i+a]
				}
				xiLen := math.Sqrt(xi[0]*xi[0] + xi[1]*xi[1] + xi[2]*xi[2])
				y := math.Sqrt(xieta[0]*xieta[0] + xieta[1]*xieta[1] + xieta[2]*xieta[2])
				s := (y - xiLen) / xiLen

				// force along the deformed bond direction
				f := model.Force(o.Stiff[b], o.Vol[n], xiLen, y)
				for a := 0; a < 3; a++ {
					o.F[3*b+a] = f * xieta[a] / y
				}

				// failure takes effect from the next step
				if model.Failed(s, o.Crits[b]) {
					o.NList[b] = broken
				}
			}
		}
	})
}

// CheckBonds applies the failure check only, without computing forces. It is
// redundant with BondForce and is kept as a diagnostic entry point for
// inspecting a displacement field without touching the force table; the
// solver never calls it.
// TODO: the inner loop starts at slot 1 and never checks slot 0; verify
// whether callers rely on this before changing the lower bound.
func (o *State) CheckBonds(model mbond.Model) {
	dispatchNodes(o.Nnodes, func(iw, ilo, ihi int) {
		for i := ilo; i < ihi; i++ {
			for j := 1; j < o.Mhoriz; j++ {
				b := i*o.Mhoriz + j
				n := o.NList[b]
				if n == broken {
					continue
				}
				var xi, xieta [3]float64
				for a := 0; a < 3; a++ {
					xi[a] = o.X[3*n+a] - o.X[3*i+a]
					xieta[a] = xi[a] + o.Un[3*n+a] - o.Un[3*i+a]
				}
				xiLen := math.Sqrt(xi[0]*xi[0] + xi[1]*xi[1] + xi[2]*xi[2])
				y := math.Sqrt(xieta[0]*xieta[0] + xieta[1]*xieta[1] + xieta[2]*xieta[2])
				s := (y - xiLen) / xiLen
				if model.Failed(s, o.Crits[b]) {
					o.NList[b] = broken
				}
			}
		}
	})
}
