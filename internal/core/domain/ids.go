package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Distinct ID types per aggregate so the compiler rejects cross-assignment.
// Construction from raw strings goes through the Parse* helpers, which are
// the single validated entry point.
type (
	TenantID    string
	AccountID   string
	EntryID     string
	JournalID   string
	StatementID string
)

func parseID(kind, raw string) (string, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return "", fmt.Errorf("invalid %s %q: %w", kind, raw, err)
	}
	return raw, nil
}

func ParseTenantID(raw string) (TenantID, error) {
	s, err := parseID("tenant ID", raw)
	return TenantID(s), err
}

func ParseAccountID(raw string) (AccountID, error) {
	s, err := parseID("account ID", raw)
	return AccountID(s), err
}

func ParseEntryID(raw string) (EntryID, error) {
	s, err := parseID("entry ID", raw)
	return EntryID(s), err
}

func ParseJournalID(raw string) (JournalID, error) {
	s, err := parseID("journal ID", raw)
	return JournalID(s), err
}

func ParseStatementID(raw string) (StatementID, error) {
	s, err := parseID("statement ID", raw)
	return StatementID(s), err
}

func NewTenantID() TenantID       { return TenantID(uuid.NewString()) }
func NewAccountID() AccountID     { return AccountID(uuid.NewString()) }
func NewEntryID() EntryID         { return EntryID(uuid.NewString()) }
func NewJournalID() JournalID     { return JournalID(uuid.NewString()) }
func NewStatementID() StatementID { return StatementID(uuid.NewString()) }

func (id TenantID) String() string    { return string(id) }
func (id AccountID) String() string   { return string(id) }
func (id EntryID) String() string     { return string(id) }
func (id JournalID) String() string   { return string(id) }
func (id StatementID) String() string { return string(id) }
