package domain

import "time"

// CommandAction is a lifecycle action applied to an account.
type CommandAction string

const (
	ActionClose  CommandAction = "CLOSE"
	ActionLock   CommandAction = "LOCK"
	ActionUnlock CommandAction = "UNLOCK"
	ActionReopen CommandAction = "REOPEN"
)

// AccountCommand is an append-only record of a lifecycle action applied to an
// account. Commands are deleted only together with the owning account.
type AccountCommand struct {
	CommandID string        `json:"commandID"`
	AccountID string        `json:"accountIdentifier"`
	Action    CommandAction `json:"action"`
	Comment   string        `json:"comment"`
	CreatedBy string        `json:"createdBy"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NextAccountState returns the state an account moves to when action is applied
// in the given state. The second return value is false when the transition is
// not part of the account state machine:
//
//	OPEN   --close-->  CLOSED
//	OPEN   --lock-->   LOCKED
//	LOCKED --unlock--> OPEN
//	CLOSED --reopen--> OPEN
func NextAccountState(state AccountState, action CommandAction) (AccountState, bool) {
	switch {
	case state == Open && action == ActionClose:
		return Closed, true
	case state == Open && action == ActionLock:
		return Locked, true
	case state == Locked && action == ActionUnlock:
		return Open, true
	case state == Closed && action == ActionReopen:
		return Open, true
	}
	return state, false
}
