package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFormatDate(t *testing.T) {
	parsed, err := ParseDate("2026-03-14 10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), parsed)
	assert.Equal(t, "2026-03-14 10:30:00", FormatDate(parsed))
}

func TestValidateDate(t *testing.T) {
	assert.True(t, ValidateDate("2026-03-14 10:30:00"))
	assert.False(t, ValidateDate("2026-03-14"))
	assert.False(t, ValidateDate("14/03/2026 10:30"))
	assert.False(t, ValidateDate(""))
}
