package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/ishivvers/galmaru"
)

func main() {
	dataArg := flag.String("d", "", "input surface brightness profile (radius, mag, uncertainty)")
	genArg := flag.Int("gen", 50000, "number of MCMC generations to run")
	burnArg := flag.Int("burn", 1000, "number of burn-in generations to discard")
	thinArg := flag.Int("thin", 100, "keep one posterior draw every thin generations")
	printFreqArg := flag.Int("pr", 5000, "frequency with which to print to the screen")
	sampFreqArg := flag.Int("samp", 100, "frequency with which to write the chain state to the log")
	runNameArg := flag.String("o", "galmaru", "specify the prefix for outfile names")
	seedArg := flag.Uint64("seed", 0, "random seed; 0 seeds from the clock")
	gzipArg := flag.Bool("z", false, "gzip the chain log")
	cpuprofileArg := flag.String("cpuprofile", "", "write a CPU profile to this file")
	flag.Parse()
	if *dataArg == "" {
		fmt.Println("please provide an input profile with -d")
		os.Exit(1)
	}
	if *cpuprofileArg != "" {
		f, err := os.Create(*cpuprofileArg)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	prof, err := galmaru.ReadProfile(*dataArg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("SUCCESSFULLY READ IN PROFILE CONTAINING", prof.Len(), "OBSERVATIONS")

	rnd := galmaru.NewRand(*seedArg)
	params := galmaru.DefaultParams(prof, rnd)
	logOutFile := *runNameArg + ".mcmc"
	if *gzipArg {
		logOutFile += ".gz"
	}
	mc, err := galmaru.InitMCMC(*genArg, *burnArg, *thinArg, *printFreqArg, *sampFreqArg, logOutFile, *gzipArg, params, prof, rnd)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	chain, err := mc.Run()
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)
	fmt.Println("COMPLETED", *genArg, "MCMC SIMULATIONS IN", elapsed)
	if chain.AcceptanceRatio < 0.1 || chain.AcceptanceRatio > 0.7 {
		fmt.Printf("WARNING: post burn-in acceptance ratio was %.3f; the chain may be poorly mixed\n", chain.AcceptanceRatio)
	}

	summary := chain.Summarize()
	fmt.Print(summary)
	fmt.Println("R_effective (bulge) / R_effective (disk) =",
		summary.Get("r_e_B").Mean/summary.Get("r_e_D").Mean)

	model, err := chain.MedianModel()
	if err != nil {
		log.Fatal(err)
	}
	if err := galmaru.PlotFit(prof, model, *runNameArg+"_fit.png"); err != nil {
		log.Fatal(err)
	}
	for _, name := range chain.Names {
		if err := galmaru.PlotTrace(chain, name, *runNameArg+"_trace_"+name+".png"); err != nil {
			log.Fatal(err)
		}
		if err := galmaru.PlotPosterior(chain, name, *runNameArg+"_post_"+name+".png"); err != nil {
			log.Fatal(err)
		}
	}
}
