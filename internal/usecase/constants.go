package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds every mutating database transaction.
	DefaultTransactionTimeout = 10 * time.Second

	// sweepBatchSize is the page size used when iterating wagers past
	// their close time.
	sweepBatchSize = 100
)
