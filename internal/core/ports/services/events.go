package services

import "context"

// Event names emitted after successful state changes. Each event carries the
// identifier of the affected entity.
const (
	EventLedgerCreated  = "ledger.created"
	EventLedgerModified = "ledger.modified"
	EventLedgerDeleted  = "ledger.deleted"

	EventAccountCreated  = "account.created"
	EventAccountModified = "account.modified"
	EventAccountClosed   = "account.closed"
	EventAccountLocked   = "account.locked"
	EventAccountUnlocked = "account.unlocked"
	EventAccountReopened = "account.reopened"
	EventAccountDeleted  = "account.deleted"

	EventJournalEntryCreated  = "journalEntry.created"
	EventJournalEntryReleased = "journalEntry.released"
)

// EventPublisher notifies other services of committed state changes. Publishing
// is fire-and-forget: implementations log delivery failures but never surface
// them, so a broker outage cannot roll back a core mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event string, identifier string)
}
