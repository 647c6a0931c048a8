// Copyright 2016 The Gopd Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements post-processing of simulation results
package out

import (
	"github.com/cpmech/gopd/pd"
	"github.com/cpmech/gosl/plt"
)

// PlotDmgSum plots the damage-sum history and saves <fnkey>-dmg.png in dirout
func PlotDmgSum(dom *pd.Domain, dirout, fnkey string, show bool) {
	plt.Reset(false, nil)
	plt.Plot(dom.Hist.T, dom.Hist.DmgSum, &plt.A{C: "r", M: ".", L: "damage sum", NoClip: true})
	plt.Gll("$t$", "$\\sum_i \\phi_i$", nil)
	if show {
		plt.Show()
		return
	}
	plt.Save(dirout, fnkey+"-dmg")
}

// PlotTip plots the tip displacement and force histories and saves
// <fnkey>-tip.png in dirout
func PlotTip(dom *pd.Domain, dirout, fnkey string, show bool) {
	plt.Reset(false, nil)
	plt.Subplot(2, 1, 1)
	plt.Plot(dom.Hist.T, dom.Hist.TipU, &plt.A{C: "b", M: ".", NoClip: true})
	plt.Gll("$t$", "tip displacement", nil)
	plt.Subplot(2, 1, 2)
	plt.Plot(dom.Hist.T, dom.Hist.TipF, &plt.A{C: "g", M: ".", NoClip: true})
	plt.Gll("$t$", "tip force", nil)
	if show {
		plt.Show()
		return
	}
	plt.Save(dirout, fnkey+"-tip")
}
