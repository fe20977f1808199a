package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeEntryToken(t *testing.T) {
	createdAt := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeEntryToken(createdAt, "entry-42")
	assert.NotEmpty(t, token)

	decodedAt, entryID, err := DecodeEntryToken(token)
	assert.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt))
	assert.Equal(t, "entry-42", entryID)
}

func TestDecodeEntryToken_IDWithSeparator(t *testing.T) {
	createdAt := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeEntryToken(createdAt, "entry|odd")
	_, entryID, err := DecodeEntryToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "entry|odd", entryID)
}

func TestDecodeEntryToken_Invalid(t *testing.T) {
	_, _, err := DecodeEntryToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = DecodeEntryToken("aGVsbG8=") // "hello", no separator
	assert.Error(t, err)

	_, _, err = DecodeEntryToken("bm90YXRpbWV8eA==") // "notatime|x"
	assert.Error(t, err)
}
