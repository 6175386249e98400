package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeEntryToken creates an opaque cursor for ledger-entry pagination from
// the last returned entry's posted time and per-account sequence number.
func EncodeEntryToken(postedAt time.Time, sequenceNumber uint64) string {
	tokenStr := fmt.Sprintf("%s|%d", postedAt.Format(timeFormat), sequenceNumber)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeEntryToken parses an entry cursor back into its components.
func DecodeEntryToken(token string) (time.Time, uint64, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token (split)")
	}

	postedAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token (time parse): %w", err)
	}

	seq, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token (sequence parse): %w", err)
	}

	return postedAt, seq, nil
}

// EncodeStatementToken creates a cursor for statement pagination from the
// last returned statement's period end and ID. The ID breaks ties between
// statements generated for the same period.
func EncodeStatementToken(periodEnd time.Time, statementID string) string {
	tokenStr := fmt.Sprintf("%s|%s", periodEnd.Format(timeFormat), statementID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeStatementToken parses a statement cursor back into its components.
func DecodeStatementToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (split)")
	}

	periodEnd, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (time parse): %w", err)
	}
	if parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (empty id)")
	}

	return periodEnd, parts[1], nil
}
