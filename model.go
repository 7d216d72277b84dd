package galmaru

import "math"

//Sersic evaluates the Sersic profile I(r) in flux units. re is the effective
//radius, n the Sersic index, and ie the intensity at r = re. The b_n term uses
//the expansion of MacArthur, Courteau & Holtzman (2003).
func Sersic(r, re, n, ie float64) float64 {
	bn := 2.*n - 1./3. + 4./(405.*n) + 46./(25515.*n*n) +
		131./(1148175.*n*n*n) - 2194697./(30690717750.*n*n*n*n)
	return ie * math.Exp(-bn*(math.Pow(r/re, 1./n)-1.))
}

//MagToFlux converts a surface brightness in magnitudes to flux units
func MagToFlux(m float64) float64 {
	return math.Pow(10., -0.4*m)
}

//FluxToMag converts a flux to a surface brightness in magnitudes
func FluxToMag(f float64) float64 {
	return -2.5 * math.Log10(f)
}

//SBModel is a two-component surface brightness model: a Sersic bulge with a
//free index plus an exponential (n = 1) disk. Effective surface brightnesses
//are carried in magnitudes and converted to flux when the profile is evaluated.
type SBModel struct {
	ReBulge float64 // effective radius of the bulge [arcsec]
	ReDisk  float64 // effective radius of the disk [arcsec]
	MeBulge float64 // bulge surface brightness at ReBulge [mag]
	MeDisk  float64 // disk surface brightness at ReDisk [mag]
	NBulge  float64 // Sersic index of the bulge
}

//FluxAt returns the summed bulge and disk flux at radius r
func (m *SBModel) FluxAt(r float64) float64 {
	bulge := Sersic(r, m.ReBulge, m.NBulge, MagToFlux(m.MeBulge))
	disk := Sersic(r, m.ReDisk, 1., MagToFlux(m.MeDisk))
	return bulge + disk
}

//MagAt returns the model surface brightness at radius r in magnitudes
func (m *SBModel) MagAt(r float64) float64 {
	return FluxToMag(m.FluxAt(r))
}

//ComponentsAt returns the bulge and disk surface brightnesses at radius r
//separately, in magnitudes
func (m *SBModel) ComponentsAt(r float64) (bulge, disk float64) {
	bulge = FluxToMag(Sersic(r, m.ReBulge, m.NBulge, MagToFlux(m.MeBulge)))
	disk = FluxToMag(Sersic(r, m.ReDisk, 1., MagToFlux(m.MeDisk)))
	return
}
