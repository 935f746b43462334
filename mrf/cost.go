package mrf

import "math/big"

// costPrecision is the mantissa precision, in bits, used for every Cost
// value. It is generous enough that sums of thousands of differently-scaled
// clause weights never lose a bit to rounding before exceeding it, which is
// what lets incremental bookkeeping satisfy the spec §4.9 exactness
// contract: a + b - b == a for any two legal costs.
const costPrecision = 256

// Cost is the high-precision scalar used to accumulate clause weights
// (spec §4.9). It is signed: it also carries negative clause weights and
// negative deltas. Clause weights can span many orders of magnitude and
// the hard-weight sentinel is effectively infinite, so plain float64
// addition/subtraction would drift after enough flips; Cost wraps
// math/big.Float at a fixed precision to avoid that drift.
//
// Cost is a value type: all arithmetic methods return a new Cost rather
// than mutating the receiver, so Cost can be copied and compared freely.
type Cost struct {
	v *big.Float
}

// newCost builds a Cost from a float64 at the package precision.
func newCost(f float64) Cost {
	return Cost{v: new(big.Float).SetPrec(costPrecision).SetFloat64(f)}
}

// CostFromFloat converts a float64 weight (as delivered by the grounder)
// into a Cost.
func CostFromFloat(f float64) Cost {
	return newCost(f)
}

var (
	// ZeroCost is the additive identity.
	ZeroCost = newCost(0)
	// OneCost is the multiplicative identity / unit SampleSAT cost.
	OneCost = newCost(1)
	// MaxCost stands in for the hard-weight sentinel's effective magnitude
	// when a caller needs a concrete upper bound (e.g. initializing a
	// "best cost seen" accumulator before the first evaluate_costs pass).
	MaxCost = newCost(0).setInf()
)

func (c Cost) setInf() Cost {
	c.v = new(big.Float).SetPrec(costPrecision).SetInf(false)
	return c
}

func (c Cost) ensure() *big.Float {
	if c.v == nil {
		return new(big.Float).SetPrec(costPrecision)
	}
	return c.v
}

// Add returns c + other.
func (c Cost) Add(other Cost) Cost {
	r := new(big.Float).SetPrec(costPrecision)
	r.Add(c.ensure(), other.ensure())
	return Cost{v: r}
}

// Sub returns c - other.
func (c Cost) Sub(other Cost) Cost {
	r := new(big.Float).SetPrec(costPrecision)
	r.Sub(c.ensure(), other.ensure())
	return Cost{v: r}
}

// Abs returns the absolute value of c.
func (c Cost) Abs() Cost {
	r := new(big.Float).SetPrec(costPrecision)
	r.Abs(c.ensure())
	return Cost{v: r}
}

// Neg returns -c.
func (c Cost) Neg() Cost {
	r := new(big.Float).SetPrec(costPrecision)
	r.Neg(c.ensure())
	return Cost{v: r}
}

// Cmp compares c and other: -1 if c < other, 0 if equal, 1 if c > other.
func (c Cost) Cmp(other Cost) int {
	return c.ensure().Cmp(other.ensure())
}

// LessThan reports whether c < other.
func (c Cost) LessThan(other Cost) bool { return c.Cmp(other) < 0 }

// LessOrEqual reports whether c <= other.
func (c Cost) LessOrEqual(other Cost) bool { return c.Cmp(other) <= 0 }

// IsZero reports whether c == 0.
func (c Cost) IsZero() bool { return c.ensure().Sign() == 0 }

// Sign returns -1, 0, or 1 depending on the sign of c.
func (c Cost) Sign() int { return c.ensure().Sign() }

// Float64 converts c to a float64, for display or for transcendental math
// (e.g. the simulated-annealing acceptance probability) where exactness no
// longer matters.
func (c Cost) Float64() float64 {
	f, _ := c.ensure().Float64()
	return f
}

// String renders c for logging.
func (c Cost) String() string {
	return c.ensure().Text('g', 10)
}

// IsInf reports whether c is the (positive) infinite sentinel, as used for
// the effective hard-weight magnitude when no finite weight_hard is given.
func (c Cost) IsInf() bool {
	return c.ensure().IsInf()
}

