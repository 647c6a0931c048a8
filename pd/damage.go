// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

// ReduceDamage recomputes the damage of every node as the fraction of its
// original family that has broken: Phi = 1 - surviving/HorizLen. It reads
// only the neighbour table, so it may run concurrently with Integrate once
// BondForce has completed. It shares the scratch rows with ReduceForce and
// must not overlap with it.
func (o *State) ReduceDamage() {
	dispatchNodes(o.Nnodes, func(iw, ilo, ihi int) {
		o.damageRange(iw, ilo, ihi)
	})
}

// damageRange recomputes the nodes in [ilo, ihi) using worker iw's scratch
func (o *State) damageRange(iw, ilo, ihi int) {
	scratch := o.scratch[iw]
	for i := ilo; i < ihi; i++ {
		for j := 0; j < o.Mhoriz; j++ {
			if o.NList[i*o.Mhoriz+j] == broken {
				scratch[j] = 0
			} else {
				scratch[j] = 1
			}
		}
		surviving := treeReduce(scratch)
		o.Phi[i] = 1.0 - surviving/float64(o.HorizLen[i])
	}
}
