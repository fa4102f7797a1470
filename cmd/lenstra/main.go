// lenstra factors a composite integer with Lenstra's elliptic-curve method.
//
// Usage:
//
//	lenstra -n 8051
//	lenstra -n 8051 -iterations 100 -smoothness 0      # suggested bound
//	lenstra -n 8051 -seed 2b7e151628aed2a6 -runs 20    # deterministic, timed
//	lenstra -n 8051 -workers 8 -json
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/primefold/lenstra/factorization"
	"github.com/primefold/lenstra/utils"
	"github.com/primefold/lenstra/utils/sampling"
)

type output struct {
	N          string `json:"n"`
	Factor     string `json:"p,omitempty"`
	Cofactor   string `json:"q,omitempty"`
	Iteration  int    `json:"iteration,omitempty"`
	Found      bool   `json:"found"`
	PrimeInput bool   `json:"primeInput,omitempty"`
	DurationMS float64 `json:"durationMs"`
}

func main() {
	var (
		nStr       = flag.String("n", "", "integer to factor (decimal, required)")
		iterations = flag.Int("iterations", factorization.DefaultMaxIterations, "curve-sampling attempts before giving up")
		smoothness = flag.Uint64("smoothness", factorization.DefaultMaxFactor, "smoothness bound (0 = suggested bound for n)")
		workers    = flag.Int("workers", 1, "concurrent workers (1 = sequential)")
		seedStr    = flag.String("seed", "", "hex seed for deterministic runs")
		runs       = flag.Int("runs", 1, "repeat the factorization and report timing statistics")
		jsonOut    = flag.Bool("json", false, "emit JSON")
	)
	flag.Parse()

	if *nStr == "" {
		log.Fatal("missing required -n")
	}
	n, ok := new(big.Int).SetString(*nStr, 10)
	if !ok || n.Sign() <= 0 {
		log.Fatalf("invalid -n: %q", *nStr)
	}

	params := factorization.Parameters{
		MaxIterations: *iterations,
		MaxFactor:     *smoothness,
	}
	if params.MaxFactor == 0 {
		params.MaxFactor = factorization.SuggestedSmoothnessBound(n)
		log.Printf("using suggested smoothness bound %d", params.MaxFactor)
	}

	var seed []byte
	if *seedStr != "" {
		var err error
		if seed, err = hex.DecodeString(*seedStr); err != nil {
			log.Fatalf("invalid -seed: %v", err)
		}
	}

	durations := map[int]float64{}
	var last output

	for run := 0; run < *runs; run++ {

		ecm := factorization.NewECM(params, newPRNG(seed, run))

		start := time.Now()
		res := search(ecm, n, *workers)
		elapsed := time.Since(start)

		durations[run] = float64(elapsed.Microseconds()) / 1e3

		last = output{
			N:          n.String(),
			Found:      res.Found,
			Iteration:  res.Iteration,
			PrimeInput: factorization.IsPrime(n),
			DurationMS: durations[run],
		}
		if res.Found {
			last.Factor = res.Factor.String()
			last.Cofactor = res.Cofactor.String()
		}
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(last); err != nil {
			log.Fatal(err)
		}
		return
	}

	printHuman(last)

	if *runs > 1 {
		printStats(durations)
	}
}

// newPRNG returns a deterministic PRNG derived from the seed and run index,
// or a crypto/rand backed one when no seed is given.
func newPRNG(seed []byte, run int) sampling.PRNG {
	if seed == nil {
		prng, _ := sampling.NewPRNG()
		return prng
	}
	key := make([]byte, 0, len(seed)+1)
	key = append(key, seed...)
	key = append(key, byte(run))
	prng, err := sampling.NewKeyedPRNG(key)
	if err != nil {
		log.Fatal(err)
	}
	return prng
}

func search(ecm *factorization.ECM, n *big.Int, workers int) factorization.Result {
	if workers > 1 {
		factor, found := ecm.FactorConcurrent(n, workers)
		res := factorization.Result{Factor: factor, Found: found}
		if found {
			res.Cofactor = new(big.Int).Quo(n, factor)
		}
		return res
	}
	return ecm.Search(n)
}

func printHuman(o output) {
	if !o.Found {
		fmt.Println("No factors found!")
		if o.PrimeInput {
			fmt.Printf("%s is probably prime\n", o.N)
		}
		return
	}
	fmt.Printf("Found factors p=%s and q=%s for n=%s\n", o.Factor, o.Cofactor, o.N)
	if o.Iteration > 0 {
		fmt.Printf("on iteration %d\n", o.Iteration)
	}
	fmt.Printf("in %.2fms\n", o.DurationMS)
}

func printStats(durations map[int]float64) {

	values := make([]float64, 0, len(durations))
	for _, run := range utils.GetSortedKeys(durations) {
		values = append(values, durations[run])
	}

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	stddev, _ := stats.StandardDeviation(values)

	fmt.Printf("runs=%d mean=%.2fms median=%.2fms stddev=%.2fms\n", len(values), mean, median, stddev)
}
