// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pd

import (
	"runtime"
	"sync"
)

// dispatchNodes runs fn over chunks of the node range [0, nnodes) using one
// goroutine per chunk and returns only after all chunks complete; the return
// is the completion barrier between kernels. Chunks never overlap, so fn may
// write to per-node (or per-bond-slot) data without locking. iw identifies
// the worker; it is always smaller than runtime.NumCPU(), so it can index
// per-worker scratch allocated up-front.
func dispatchNodes(nnodes int, fn func(iw, ilo, ihi int)) {
	nw := runtime.NumCPU()
	if nw > nnodes {
		nw = nnodes
	}
	if nw <= 1 {
		fn(0, 0, nnodes)
		return
	}
	chunk := (nnodes + nw - 1) / nw
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		ilo := w * chunk
		ihi := ilo + chunk
		if ihi > nnodes {
			ihi = nnodes
		}
		if ilo >= ihi {
			break
		}
		wg.Add(1)
		go func(iw, ilo, ihi int) {
			defer wg.Done()
			fn(iw, ilo, ihi)
		}(w, ilo, ihi)
	}
	wg.Wait()
}
