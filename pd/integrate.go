// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

// Integrate advances the displacements by one forward-Euler step:
// Un += dt*Udn on free dofs. Dofs with a prescribed displacement boundary
// condition ignore dt and Udn entirely and accumulate the boundary value
// scaled by dScale instead, so repeated steps ratchet the prescribed load.
func (o *State) Integrate(dt, dScale float64) {
	dispatchNodes(o.Nnodes, func(iw, ilo, ihi int) {
		for i := ilo; i < ihi; i++ {
			for a := 0; a < 3; a++ {
				r := 3*i + a
				if o.DispBcTypes[r] == BcPrescribed {
					o.Un[r] += dScale * o.DispBcVals[r]
				} else {
					o.Un[r] += dt * o.Udn[r]
				}
			}
		}
	})
}
