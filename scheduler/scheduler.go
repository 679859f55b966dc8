package scheduler

// Package scheduler keeps the stock cache fresh.
// It handles:
// - The round-robin refresh loop (one symbol per tick, cursor persisted)
// - Bounded audit logging of every refresh attempt
// - Periodic re-seeding of the configured symbol universe
//
// The refresh loop is implemented in refresher.go, the job wiring in jobs.go
