// Package progression implements the pure proficiency-gain calculation for
// the mastery engine: evidence gating, score scaling, level and ceiling
// damping, the minimum-gain floor rule, and clamping to the 0-100 range.
//
// The package performs no I/O and holds no mutable state; all tunable values
// live in Params so the calculator can be exercised in isolation.
package progression
