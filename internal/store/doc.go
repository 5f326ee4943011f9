// Package store defines the persistence interfaces for the progression
// engine: the skill progress ledger (current state + append-only history)
// and the read-only taxonomy tables. Implementations live in
// internal/platform/postgres.
package store
