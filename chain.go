package galmaru

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

//Chain stores the posterior samples drawn by an MCMC run. Samples are
//appended during sampling and read-only afterwards.
type Chain struct {
	Names           []string
	Samples         map[string][]float64
	LogPost         []float64
	AcceptanceRatio float64 // post-burn-in acceptance ratio across all proposals
}

//InitChain will initialize an empty chain for the named parameters
func InitChain(names []string) *Chain {
	c := new(Chain)
	c.Names = append(c.Names, names...)
	c.Samples = make(map[string][]float64)
	for _, n := range names {
		c.Samples[n] = nil
	}
	return c
}

//Append adds one posterior draw to the chain
func (c *Chain) Append(state []float64, logPost float64) {
	for i, n := range c.Names {
		c.Samples[n] = append(c.Samples[n], state[i])
	}
	c.LogPost = append(c.LogPost, logPost)
}

//Len returns the number of stored draws
func (c *Chain) Len() int {
	return len(c.LogPost)
}

//ParamSummary holds the posterior point estimates for one parameter
type ParamSummary struct {
	Name   string
	Mean   float64
	Median float64
	P16    float64
	P84    float64
	P2p5   float64
	P97p5  float64
}

//Summary holds per-parameter posterior statistics for a whole chain
type Summary struct {
	Params []ParamSummary
}

//Summarize will compute posterior means, medians, and the 16/84 and 2.5/97.5
//percentile credible intervals for every parameter in the chain.
func (c *Chain) Summarize() *Summary {
	s := new(Summary)
	for _, name := range c.Names {
		samples := c.Samples[name]
		sorted := append([]float64(nil), samples...)
		sort.Float64s(sorted)
		ps := ParamSummary{
			Name:   name,
			Mean:   stat.Mean(samples, nil),
			Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
			P16:    stat.Quantile(0.16, stat.Empirical, sorted, nil),
			P84:    stat.Quantile(0.84, stat.Empirical, sorted, nil),
			P2p5:   stat.Quantile(0.025, stat.Empirical, sorted, nil),
			P97p5:  stat.Quantile(0.975, stat.Empirical, sorted, nil),
		}
		s.Params = append(s.Params, ps)
	}
	return s
}

//Get returns the summary for the named parameter, or nil if absent
func (s *Summary) Get(name string) *ParamSummary {
	for i := range s.Params {
		if s.Params[i].Name == name {
			return &s.Params[i]
		}
	}
	return nil
}

func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s%12s%12s%12s%12s%12s%12s\n", "param", "mean", "median", "16%", "84%", "2.5%", "97.5%")
	for _, p := range s.Params {
		fmt.Fprintf(&b, "%-8s%12.4f%12.4f%12.4f%12.4f%12.4f%12.4f\n",
			p.Name, p.Mean, p.Median, p.P16, p.P84, p.P2p5, p.P97p5)
	}
	return b.String()
}

//MedianModel will build the surface brightness model at the per-parameter
//posterior medians.
func (c *Chain) MedianModel() (*SBModel, error) {
	s := c.Summarize()
	vals := make([]float64, len(c.Names))
	for i, name := range c.Names {
		vals[i] = s.Get(name).Median
	}
	return ModelFromParams(c.Names, vals)
}
