package factorization

import (
	"bytes"
	"encoding/binary"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/zeebo/blake3"

	"github.com/primefold/lenstra/utils/bignum"
	"github.com/primefold/lenstra/utils/sampling"
)

const workerKeySize = 32

// workerKey derives a per-worker PRNG key by hashing the master seed
// together with the worker index, so that workers sample disjoint
// pseudo-random curve streams from a single seed.
func workerKey(seed []byte, worker int) []byte {
	hasher := blake3.New()
	buf := new(bytes.Buffer)
	buf.Write(seed)
	binary.Write(buf, binary.BigEndian, int64(worker))
	hasher.Write(buf.Bytes())
	key := hasher.Sum(nil)
	return key[:workerKeySize]
}

// FactorConcurrent is [ECM.Factor] with the iteration budget spread across
// the given number of workers. Attempts are independent, so each worker runs
// its own slice of the retry loop with a PRNG derived from the orchestrator
// seed; the first nontrivial factor wins and the remaining workers stop at
// their next attempt boundary.
func (ecm *ECM) FactorConcurrent(N *big.Int, workers int) (factor *big.Int, found bool) {

	if workers <= 1 {
		return ecm.Factor(N)
	}

	if N.Bit(0) == 0 && N.Cmp(big.NewInt(2)) > 0 {
		return big.NewInt(2), true
	}

	// The master seed is the orchestrator key when it is deterministic,
	// otherwise a fresh random one.
	var seed []byte
	if keyed, ok := ecm.prng.(*sampling.KeyedPRNG); ok {
		seed = keyed.Key()
	} else {
		seed = make([]byte, workerKeySize)
		if _, err := ecm.prng.Read(seed); err != nil {
			panic(err)
		}
	}

	bound := bignum.Isqrt(N)
	bound.Add(bound, big.NewInt(1))

	perWorker := (ecm.params.MaxIterations + workers - 1) / workers

	var done atomic.Bool
	results := make(chan *big.Int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			prng, err := sampling.NewKeyedPRNG(workerKey(seed, worker))
			if err != nil {
				panic(err)
			}
			slice := &ECM{params: ecm.params, prng: prng}

			for it := 0; it < perWorker && !done.Load(); it++ {
				if factor, found := slice.attempt(N, bound); found {
					done.Store(true)
					results <- factor
					return
				}
			}
		}(i)
	}

	wg.Wait()
	close(results)

	if factor, ok := <-results; ok {
		return factor, true
	}

	return nil, false
}
