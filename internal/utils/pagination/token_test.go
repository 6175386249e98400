package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeEntryToken(t *testing.T) {
	// Test case 1: Standard posted time with a nonzero sequence number
	postedAt := time.Date(2025, 3, 15, 14, 30, 45, 123456789, time.UTC)
	token := EncodeEntryToken(postedAt, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedPostedAt, decodedSeq, err := DecodeEntryToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, postedAt, decodedPostedAt, "Posted time should match after decode")
	assert.Equal(t, uint64(42), decodedSeq, "Sequence number should match after decode")

	// Test case 2: Zero time and sequence one (the first entry on an account)
	zeroTime := time.Time{}
	zeroToken := EncodeEntryToken(zeroTime, 1)
	decodedZeroTime, decodedFirstSeq, err := DecodeEntryToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroTime, "Zero time should match after decode")
	assert.Equal(t, uint64(1), decodedFirstSeq, "Sequence number should match after decode")

	// Test case 3: Current time values
	now := time.Now().UTC()
	nowToken := EncodeEntryToken(now, 1000000)
	decodedNow, decodedNowSeq, err := DecodeEntryToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")

	// Due to potential nanosecond precision issues, use Equal instead of direct comparison
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
	assert.Equal(t, uint64(1000000), decodedNowSeq, "Sequence number should match after decode")
}

func TestDecodeEntryTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeEntryToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := "MjAyNS0wMy0xNVQwMDowMDowMFo=" // Base64 encoded timestamp without separator
	_, _, err = DecodeEntryToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid time format
	invalidTimeToken := "bm90YXRpbWV8NDI=" // Base64 encoded "notatime|42"
	_, _, err = DecodeEntryToken(invalidTimeToken)
	assert.Error(t, err, "Should return an error for invalid time format")
	assert.Contains(t, err.Error(), "time parse", "Error should mention time parsing issue")

	// Test invalid sequence number
	badSeqToken := "MjAyNS0wMy0xNVQwMDowMDowMFp8bm90YW51bWJlcg==" // Base64 encoded "2025-03-15T00:00:00Z|notanumber"
	_, _, err = DecodeEntryToken(badSeqToken)
	assert.Error(t, err, "Should return an error for invalid sequence number")
	assert.Contains(t, err.Error(), "sequence parse", "Error should mention sequence parsing issue")
}

func TestEncodeDecodeStatementToken(t *testing.T) {
	// Test with a known period end and statement ID
	periodEnd := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	statementID := "9b2f8c1e-4a7d-4f3b-9c6a-2d8e5f7a1b3c"
	token := EncodeStatementToken(periodEnd, statementID)

	decodedPeriodEnd, decodedID, err := DecodeStatementToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, periodEnd, decodedPeriodEnd, "Period end should match after decode")
	assert.Equal(t, statementID, decodedID, "Statement ID should match after decode")

	// Test with current time
	now := time.Now().UTC()
	nowToken := EncodeStatementToken(now, statementID)

	decodedNow, _, err := DecodeStatementToken(nowToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.True(t, now.Equal(decodedNow), "Period end should match after decode")
}

func TestDecodeStatementTokenError(t *testing.T) {
	_, _, err := DecodeStatementToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	noSeparatorToken := "MjAyNS0wMy0xNVQwMDowMDowMFo=" // Base64 encoded timestamp without separator
	_, _, err = DecodeStatementToken(noSeparatorToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid time format
	badTimeToken := "bm90YXRpbWV8c3RtdA==" // Base64 encoded "notatime|stmt"
	_, _, err = DecodeStatementToken(badTimeToken)
	assert.Error(t, err, "Should return an error for invalid time format")
	assert.Contains(t, err.Error(), "time parse", "Error should mention time parsing issue")

	// Test empty statement ID
	emptyIDToken := "MjAyNS0wMy0xNVQwMDowMDowMFp8" // Base64 encoded "2025-03-15T00:00:00Z|"
	_, _, err = DecodeStatementToken(emptyIDToken)
	assert.Error(t, err, "Should return an error for an empty statement ID")
	assert.Contains(t, err.Error(), "empty id", "Error should mention the empty ID")
}
