// Package progress implements the update orchestrator: the only writer of
// skill progress state. It resolves which skills a learning event touches
// through the taxonomy registry, computes each gain with the pure progression
// calculator, and commits new state plus an audit history row to the ledger,
// one skill at a time, each commit atomic.
package progress
