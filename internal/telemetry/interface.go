package telemetry

type ITelemetry interface {
	// IndexPoolTransactions ingests the pool's swap-fee transactions mined
	// since the last persisted record, bounded by the look-back ceiling.
	IndexPoolTransactions(pool string) error
}
