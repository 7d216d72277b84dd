package galmaru

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

// TestMultiplierProp verifies the Hastings ratio matches the applied multiplier
func TestMultiplierProp(t *testing.T) {
	rnd := NewRand(7)
	for i := 0; i < 100; i++ {
		theta := 3.5
		thetaStar, propRat := multiplierProp(theta, 0.4, rnd)
		require.Greater(t, thetaStar, 0.)
		require.InEpsilon(t, thetaStar/theta, propRat, 1e-12)
	}
}

// TestSlidingWindowProp verifies proposals stay within the window
func TestSlidingWindowProp(t *testing.T) {
	rnd := NewRand(7)
	for i := 0; i < 100; i++ {
		theta := 20.
		thetaStar := slidingWindowProp(theta, 0.5, rnd)
		require.LessOrEqual(t, math.Abs(thetaStar-theta), 0.25)
	}
}

// TestAdjustStepLength verifies the step is fixed at the target ratio, shrunk
// below it, and kept finite at degenerate ratios
func TestAdjustStepLength(t *testing.T) {
	require.InDelta(t, 0.2, adjustStepLength(0.2, 0.44), 1e-12)
	require.Less(t, adjustStepLength(0.2, 0.1), 0.2)
	require.Greater(t, adjustStepLength(0.2, 0.8), 0.2)
	require.False(t, math.IsInf(adjustStepLength(0.2, 1.0), 0))
	require.Greater(t, adjustStepLength(0.2, 0.0), 0.)
}

// TestInitMCMCValidation verifies run-configuration checks
func TestInitMCMCValidation(t *testing.T) {
	prof := &Profile{R: []float64{1.}, Mag: []float64{20.}, Err: []float64{0.1}}
	rnd := NewRand(1)
	params := DefaultParams(prof, rnd)

	_, err := InitMCMC(0, 0, 1, 10, 10, "x.mcmc", false, params, prof, rnd)
	require.Error(t, err)
	_, err = InitMCMC(100, 100, 1, 10, 10, "x.mcmc", false, params, prof, rnd)
	require.Error(t, err)
	_, err = InitMCMC(100, 10, 0, 10, 10, "x.mcmc", false, params, prof, rnd)
	require.Error(t, err)
	_, err = InitMCMC(100, 10, 1, 0, 10, "x.mcmc", false, params, prof, rnd)
	require.Error(t, err)
}

func syntheticProfile(truth *SBModel, sigma float64, rnd *distuv.Normal) *Profile {
	prof := &Profile{}
	for r := 2.; r <= 100.; r += 2. {
		prof.R = append(prof.R, r)
		prof.Mag = append(prof.Mag, truth.MagAt(r)+rnd.Rand())
		prof.Err = append(prof.Err, sigma)
	}
	return prof
}

// TestRunRecoversTruth runs the full sampler on data generated from known
// parameters and checks the posterior medians land near the truth
func TestRunRecoversTruth(t *testing.T) {
	if testing.Short() {
		t.Skip("sampling run")
	}
	rnd := NewRand(42)
	truth := &SBModel{ReBulge: 10., ReDisk: 50., MeBulge: 18., MeDisk: 20., NBulge: 4.}
	sigma := 0.1
	noise := &distuv.Normal{Mu: 0., Sigma: sigma, Src: rnd}
	prof := syntheticProfile(truth, sigma, noise)

	params := []Param{
		{Name: "r_e_B", Prior: InitUniformPrior(5., 15., rnd), Kind: ProposalMultiplier},
		{Name: "r_e_D", Prior: InitUniformPrior(40., 60., rnd), Kind: ProposalMultiplier},
		{Name: "M_e_B", Prior: InitUniformPrior(17., 19., rnd), Kind: ProposalWindow},
		{Name: "M_e_D", Prior: InitUniformPrior(19., 21., rnd), Kind: ProposalWindow},
		{Name: "n", Prior: InitLogUniformPrior(2., 8., rnd), Kind: ProposalMultiplier},
	}
	logOut := filepath.Join(t.TempDir(), "chain.mcmc")
	mc, err := InitMCMC(30000, 5000, 25, 30000, 1000, logOut, false, params, prof, rnd)
	require.NoError(t, err)

	chain, err := mc.Run()
	require.NoError(t, err)
	require.Equal(t, 1000, chain.Len())
	require.Greater(t, chain.AcceptanceRatio, 0.)
	require.LessOrEqual(t, chain.AcceptanceRatio, 1.)

	s := chain.Summarize()
	tolerances := map[string]float64{
		"r_e_B": 3., "r_e_D": 8., "M_e_B": 0.6, "M_e_D": 0.6, "n": 1.5,
	}
	want := map[string]float64{
		"r_e_B": truth.ReBulge, "r_e_D": truth.ReDisk,
		"M_e_B": truth.MeBulge, "M_e_D": truth.MeDisk, "n": truth.NBulge,
	}
	for name, tol := range tolerances {
		ps := s.Get(name)
		require.NotNil(t, ps)
		require.InDelta(t, want[name], ps.Median, tol)
		require.LessOrEqual(t, ps.P2p5, ps.Median)
		require.LessOrEqual(t, ps.Median, ps.P97p5)
		require.LessOrEqual(t, ps.P16, ps.P84)
	}

	// the chain log carries a header plus sampled rows
	f, err := os.Open(logOut)
	require.NoError(t, err)
	defer f.Close()
	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	require.Contains(t, scanner.Text(), "logLikelihood")
	require.Contains(t, scanner.Text(), "r_e_B")
}

// TestRunGzipLog verifies the compressed chain log is readable
func TestRunGzipLog(t *testing.T) {
	rnd := NewRand(3)
	truth := &SBModel{ReBulge: 10., ReDisk: 50., MeBulge: 18., MeDisk: 20., NBulge: 4.}
	noise := &distuv.Normal{Mu: 0., Sigma: 0.1, Src: rnd}
	prof := syntheticProfile(truth, 0.1, noise)
	params := DefaultParams(prof, rnd)

	logOut := filepath.Join(t.TempDir(), "chain.mcmc.gz")
	mc, err := InitMCMC(500, 100, 10, 500, 50, logOut, true, params, prof, rnd)
	require.NoError(t, err)
	chain, err := mc.Run()
	require.NoError(t, err)
	require.Equal(t, 40, chain.Len())

	f, err := os.Open(logOut)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()
	scanner := bufio.NewScanner(gz)
	require.True(t, scanner.Scan())
	require.Contains(t, scanner.Text(), "generation\tlogPrior\tlogLikelihood")
}
