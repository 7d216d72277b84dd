package galmaru

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

//Prior is the prior distribution placed on a single model parameter
type Prior interface {
	LogProb(x float64) float64
	Rand() float64
	Mean() float64
}

//UniformPrior is a flat prior over a bounded range
type UniformPrior struct {
	dist distuv.Uniform
}

//InitUniformPrior will initialize a flat prior on [min, max]
func InitUniformPrior(min, max float64, src rand.Source) *UniformPrior {
	p := new(UniformPrior)
	p.dist = distuv.Uniform{Min: min, Max: max, Src: src}
	return p
}

//LogProb returns the log prior density at x, -Inf outside [min, max]
func (p *UniformPrior) LogProb(x float64) float64 {
	return p.dist.LogProb(x)
}

//Rand draws a value from the prior
func (p *UniformPrior) Rand() float64 {
	return p.dist.Rand()
}

//Mean returns the prior mean
func (p *UniformPrior) Mean() float64 {
	return p.dist.Mean()
}

//LogUniformPrior is flat in log x over [min, max], for scale parameters.
//Internally it holds a uniform density on [log min, log max].
type LogUniformPrior struct {
	min, max float64
	dist     distuv.Uniform
}

//InitLogUniformPrior will initialize a log-uniform prior on [min, max].
//min must be > 0.
func InitLogUniformPrior(min, max float64, src rand.Source) *LogUniformPrior {
	p := new(LogUniformPrior)
	p.min = min
	p.max = max
	p.dist = distuv.Uniform{Min: math.Log(min), Max: math.Log(max), Src: src}
	return p
}

//LogProb returns the log prior density at x, -Inf outside [min, max]
func (p *LogUniformPrior) LogProb(x float64) float64 {
	if x < p.min || x > p.max {
		return math.Inf(-1)
	}
	return p.dist.LogProb(math.Log(x)) - math.Log(x)
}

//Rand draws a value from the prior
func (p *LogUniformPrior) Rand() float64 {
	return math.Exp(p.dist.Rand())
}

//Mean returns the prior mean
func (p *LogUniformPrior) Mean() float64 {
	return (p.max - p.min) / (math.Log(p.max) - math.Log(p.min))
}

//ProposalKind selects the Metropolis proposal kernel used for a parameter
type ProposalKind int

const (
	//ProposalWindow is a symmetric sliding-window proposal
	ProposalWindow ProposalKind = iota
	//ProposalMultiplier is a log-scale multiplier proposal for positive parameters
	ProposalMultiplier
)

//Param is one free model parameter: its name, prior, and proposal kernel
type Param struct {
	Name  string
	Prior Prior
	Kind  ProposalKind
}

//DefaultParams will build the standard two-component parameter set with
//uninformative priors derived from the observed profile: bulge and disk
//effective radii split at the mean observed radius, effective surface
//brightnesses between the mean and faintest observed magnitudes, and a
//weakly constrained bulge Sersic index.
func DefaultParams(prof *Profile, src rand.Source) []Param {
	meanR := prof.MeanRadius()
	maxR := prof.MaxRadius()
	meanMag := prof.MeanMag()
	maxMag := prof.MaxMag()
	return []Param{
		{Name: "r_e_B", Prior: InitUniformPrior(0., meanR, src), Kind: ProposalMultiplier},
		{Name: "r_e_D", Prior: InitUniformPrior(meanR, maxR, src), Kind: ProposalMultiplier},
		{Name: "M_e_B", Prior: InitUniformPrior(meanMag, maxMag, src), Kind: ProposalWindow},
		{Name: "M_e_D", Prior: InitUniformPrior(meanMag, maxMag, src), Kind: ProposalWindow},
		{Name: "n", Prior: InitUniformPrior(0.25, 10., src), Kind: ProposalMultiplier},
	}
}

//ModelFromParams will assemble an SBModel from parallel name and value slices
func ModelFromParams(names []string, values []float64) (*SBModel, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("got %d names for %d values", len(names), len(values))
	}
	m := new(SBModel)
	for i, name := range names {
		switch name {
		case "r_e_B":
			m.ReBulge = values[i]
		case "r_e_D":
			m.ReDisk = values[i]
		case "M_e_B":
			m.MeBulge = values[i]
		case "M_e_D":
			m.MeDisk = values[i]
		case "n":
			m.NBulge = values[i]
		default:
			return nil, fmt.Errorf("unknown parameter %q", name)
		}
	}
	return m, nil
}
