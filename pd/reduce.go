// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

// treeReduce sums scratch by pairwise halving. len(scratch) must be a power
// of two (checked once at setup). The halving order bounds the floating
// point error compared to a left-to-right sum and matches the work-group
// reduction used by the device kernels, so CPU and device results agree
// bit-for-bit on the same inputs. Destroys scratch.
func treeReduce(scratch []float64) float64 {
	for h := len(scratch) / 2; h > 0; h /= 2 {
		for k := 0; k < h; k++ {
			scratch[k] += scratch[k+h]
		}
	}
	return scratch[0]
}

// ReduceForce sums the per-bond force contributions of each node into the
// velocity-increment buffer Udn, one value per cartesian axis. Dofs with a
// prescribed force boundary condition discard the internal sum and receive
// the boundary value scaled by fScale instead. Udn is fully overwritten.
func (o *State) ReduceForce(fScale float64) {
	dispatchNodes(o.Nnodes, func(iw, ilo, ihi int) {
		o.reduceForceRange(iw, ilo, ihi, fScale)
	})
}

// reduceForceRange reduces the nodes in [ilo, ihi) using worker iw's scratch
func (o *State) reduceForceRange(iw, ilo, ihi int, fScale float64) {
	scratch := o.scratch[iw]
	for i := ilo; i < ihi; i++ {
		for a := 0; a < 3; a++ {
			r := 3*i + a
			if o.ForceBcTypes[r] == BcPrescribed {
				o.Udn[r] = fScale * o.ForceBcVals[r]
				continue
			}
			for j := 0; j < o.Mhoriz; j++ {
				scratch[j] = o.F[3*(i*o.Mhoriz+j)+a]
			}
			o.Udn[r] = treeReduce(scratch)
		}
	}
}
