package mrf

// Well-known name prefixes the grounder is required to use bit-exact
// (spec §6, §9 "Global state for name prefixes"). They are consumed by the
// logic package's function elimination/introduction (spec §4.6) and must
// stay in sync with whatever external grounder produced the MRF.
const (
	// AuxPredicatePrefix marks a predicate introduced during function
	// elimination, e.g. "AUX_f".
	AuxPredicatePrefix = "AUX_"

	// FuncRetVarPrefix marks a fresh variable standing in for a function's
	// return slot during function elimination, e.g. "funcRetVar3".
	FuncRetVarPrefix = "funcRetVar"
)
