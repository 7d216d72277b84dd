package galmaru

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/exp/rand"
)

func slidingWindowProp(theta, wsize float64, rnd *rand.Rand) (thetaStar float64) {
	u := rnd.Float64()
	thetaStar = theta - (wsize / 2.) + (wsize * u)
	return
}

func multiplierProp(theta, epsilon float64, rnd *rand.Rand) (thetaStar, propRat float64) {
	u := rnd.Float64()
	c := math.Exp((u - 0.5) * epsilon)
	thetaStar = theta * c
	propRat = c
	return
}

//this will calculate the optimal step length for a proposal from its running
//acceptance ratio, targeting the 0.44 optimum for single-parameter updates
func adjustStepLength(epsilon, acceptanceRatio float64) (epsilonStar float64) {
	acceptanceRatioStar := 0.44
	if acceptanceRatio < 0.01 {
		acceptanceRatio = 0.01
	} else if acceptanceRatio > 0.99 {
		acceptanceRatio = 0.99
	}
	s := math.Pi / 2.
	epsilonStar = epsilon * (math.Tan(s*acceptanceRatio) / math.Tan(s*acceptanceRatioStar))
	return
}

//NewRand will return a PRNG seeded with the given value, or with the wall
//clock when seed is 0
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

//MCMC is a struct for storing information about the current run
type MCMC struct {
	NGEN       int
	BURN       int
	THIN       int
	PRINTFREQ  int
	WRITEFREQ  int
	LOGOUTFILE string
	GZIP       bool
	PARAMS     []Param
	PROF       *Profile
	PROFLL     *LL
	PRIORCUR   float64
	STATE      []float64
	STEPLEN    []float64
	RNG        *rand.Rand

	names       []string
	accepts     []float64
	tries       []float64
	postAccepts float64
	postTries   float64
}

//InitMCMC sets up all of the attributes of the MCMC run. The starting state
//is drawn from the priors.
func InitMCMC(gen, burn, thin, printFreq, writeFreq int, logOut string, gzipLog bool, params []Param, prof *Profile, rnd *rand.Rand) (*MCMC, error) {
	if gen <= 0 {
		return nil, fmt.Errorf("number of generations must be positive, got %d", gen)
	}
	if burn < 0 || burn >= gen {
		return nil, fmt.Errorf("burn-in must be in [0, %d), got %d", gen, burn)
	}
	if thin < 1 {
		return nil, fmt.Errorf("thinning interval must be >= 1, got %d", thin)
	}
	if printFreq < 1 || writeFreq < 1 {
		return nil, fmt.Errorf("print and write frequencies must be >= 1, got %d and %d", printFreq, writeFreq)
	}
	chain := new(MCMC)
	chain.NGEN = gen
	chain.BURN = burn
	chain.THIN = thin
	chain.PRINTFREQ = printFreq
	chain.WRITEFREQ = writeFreq
	chain.LOGOUTFILE = logOut
	chain.GZIP = gzipLog
	chain.PARAMS = params
	chain.PROF = prof
	chain.PROFLL = InitLL()
	chain.RNG = rnd
	chain.STATE = make([]float64, len(params))
	chain.STEPLEN = make([]float64, len(params))
	chain.accepts = make([]float64, len(params))
	chain.tries = make([]float64, len(params))
	for i, p := range params {
		chain.names = append(chain.names, p.Name)
		chain.STATE[i] = p.Prior.Rand()
		chain.STEPLEN[i] = 0.2
	}
	if _, err := ModelFromParams(chain.names, chain.STATE); err != nil {
		return nil, err
	}
	return chain, nil
}

func (chain *MCMC) logPrior() float64 {
	lp := 0.
	for i, p := range chain.PARAMS {
		lp += p.Prior.LogProb(chain.STATE[i])
	}
	return lp
}

func (chain *MCMC) model() *SBModel {
	m, _ := ModelFromParams(chain.names, chain.STATE)
	return m
}

//Run will run Markov Chain Monte Carlo simulations, updating one parameter
//per generation, and return the thinned post-burn-in posterior chain.
func (chain *MCMC) Run() (*Chain, error) {
	f, err := os.Create(chain.LOGOUTFILE)
	if err != nil {
		return nil, fmt.Errorf("creating chain log: %w", err)
	}
	defer f.Close()
	var logWriter *bufio.Writer
	var gz *gzip.Writer
	if chain.GZIP {
		gz = gzip.NewWriter(f)
		logWriter = bufio.NewWriter(gz)
	} else {
		logWriter = bufio.NewWriter(f)
	}
	fmt.Fprint(logWriter, "generation\tlogPrior\tlogLikelihood")
	for _, name := range chain.names {
		fmt.Fprint(logWriter, "\t"+name)
	}
	fmt.Fprint(logWriter, "\n")

	chain.PROFLL.CUR = chain.PROFLL.Calc(chain.model(), chain.PROF)
	chain.PRIORCUR = chain.logPrior()
	out := InitChain(chain.names)
	for i := 0; i < chain.NGEN; i++ {
		chain.update(i)

		if i%200 == 0 && i <= chain.BURN && i != 0 { // use burn in period to adjust the proposal step lengths every 200 generations
			for j := range chain.PARAMS {
				if chain.tries[j] == 0. {
					continue
				}
				chain.STEPLEN[j] = adjustStepLength(chain.STEPLEN[j], chain.accepts[j]/chain.tries[j])
			}
		}
		if i == 0 {
			fmt.Println("generation", "logPrior", "logLikelihood", "acceptanceRatio")
			fmt.Println("0", chain.PRIORCUR, chain.PROFLL.CUR, "NA")
		}
		if i%chain.PRINTFREQ == 0 && i != 0 {
			fmt.Println(i, chain.PRIORCUR, chain.PROFLL.CUR, chain.acceptanceRatio())
		}
		if i%chain.WRITEFREQ == 0 {
			fmt.Fprint(logWriter, strconv.Itoa(i)+"\t"+strconv.FormatFloat(chain.PRIORCUR, 'f', -1, 64)+"\t"+strconv.FormatFloat(chain.PROFLL.CUR, 'f', -1, 64))
			for _, v := range chain.STATE {
				fmt.Fprint(logWriter, "\t"+strconv.FormatFloat(v, 'f', -1, 64))
			}
			fmt.Fprint(logWriter, "\n")
		}
		if i >= chain.BURN && (i-chain.BURN)%chain.THIN == 0 {
			state := append([]float64(nil), chain.STATE...)
			out.Append(state, chain.PRIORCUR+chain.PROFLL.CUR)
		}
	}
	if chain.postTries > 0. {
		out.AcceptanceRatio = chain.postAccepts / chain.postTries
	}
	if err := logWriter.Flush(); err != nil {
		return nil, fmt.Errorf("writing chain log: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return nil, fmt.Errorf("writing chain log: %w", err)
		}
	}
	return out, nil
}

func (chain *MCMC) update(i int) {
	chain.PROFLL.LAST = chain.PROFLL.CUR
	j := chain.RNG.Intn(len(chain.PARAMS))
	old := chain.STATE[j]
	var propRat float64
	switch chain.PARAMS[j].Kind {
	case ProposalMultiplier:
		chain.STATE[j], propRat = multiplierProp(old, chain.STEPLEN[j], chain.RNG)
	default:
		chain.STATE[j] = slidingWindowProp(old, chain.STEPLEN[j], chain.RNG)
		propRat = 1.
	}
	chain.tries[j]++
	if i >= chain.BURN {
		chain.postTries++
	}
	lpstar := chain.logPrior()
	if math.IsInf(lpstar, -1) { // proposal left the prior support
		chain.STATE[j] = old
		return
	}
	llstar := chain.PROFLL.Calc(chain.model(), chain.PROF)
	alpha := math.Exp(lpstar-chain.PRIORCUR) * math.Exp(llstar-chain.PROFLL.CUR) * propRat
	r := chain.RNG.Float64()
	if r < alpha {
		chain.PROFLL.CUR = llstar
		chain.PRIORCUR = lpstar
		chain.accepts[j]++
		if i >= chain.BURN {
			chain.postAccepts++
		}
	} else {
		chain.STATE[j] = old
	}
}

func (chain *MCMC) acceptanceRatio() float64 {
	accepts, tries := 0., 0.
	for j := range chain.PARAMS {
		accepts += chain.accepts[j]
		tries += chain.tries[j]
	}
	if tries == 0. {
		return 0.
	}
	return accepts / tries
}
