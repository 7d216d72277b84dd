package galmaru

import (
	"gonum.org/v1/gonum/stat/distuv"
)

//LL is a struct for likelihood calculations
type LL struct {
	CUR  float64
	LAST float64
}

//InitLL will initialize the likelihood struct
func InitLL() *LL {
	return new(LL)
}

//Calc will calculate the log-likelihood of the observed profile under the
//model: each observed magnitude is Gaussian about the model prediction with
//the per-point uncertainty as its standard deviation.
func (ll *LL) Calc(m *SBModel, prof *Profile) float64 {
	lnl := 0.
	for i, r := range prof.R {
		norm := distuv.Normal{Mu: m.MagAt(r), Sigma: prof.Err[i]}
		lnl += norm.LogProb(prof.Mag[i])
	}
	return lnl
}
