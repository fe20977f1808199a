package repositories

// RepositoryProvider bundles the repositories handed from the storage layer to
// the service container.
type RepositoryProvider struct {
	LedgerRepo  LedgerRepository
	AccountRepo AccountRepository
	JournalRepo JournalRepository
	PayrollRepo PayrollRepository
}
