package factorization

import (
	"math/big"
)

// IsPrime applies the Baillie-PSW test, which is 100% accurate for numbers
// below 2^64 and has no known composite passing it above.
func IsPrime(x *big.Int) bool {
	return x.ProbablyPrime(0)
}
