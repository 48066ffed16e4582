package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "iysyatra_backend/internals/helpers"
)

func TestBucketRange(t *testing.T) {
	start, end, err := BucketRange("25", "1")
	require.NoError(t, err)
	assert.Equal(t, 251000, start)
	assert.Equal(t, 251999, end)

	start, end, err = BucketRange("25", "7")
	require.NoError(t, err)
	assert.Equal(t, 257000, start)
	assert.Equal(t, 257999, end)
}

func TestBucketRangeRejectsBadInput(t *testing.T) {
	_, _, err := BucketRange("2025", "1")
	assert.Error(t, err)

	_, _, err = BucketRange("25", "12")
	assert.Error(t, err)

	_, _, err = BucketRange("2x", "1")
	assert.Error(t, err)
}

func TestNextInBucket(t *testing.T) {
	start, end := 251000, 251999

	// Empty bucket allocates the first real slot, not the sentinel.
	next, err := NextInBucket(0, start, end)
	require.NoError(t, err)
	assert.Equal(t, 251001, next)

	next, err = NextInBucket(251001, start, end)
	require.NoError(t, err)
	assert.Equal(t, 251002, next)

	next, err = NextInBucket(251998, start, end)
	require.NoError(t, err)
	assert.Equal(t, 251999, next)
}

func TestNextInBucketOverflow(t *testing.T) {
	_, err := NextInBucket(251999, 251000, 251999)
	require.Error(t, err)

	var appErr *helper.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SEQUENCE_OVERFLOW", appErr.Code)
}

func TestFormatMemberID(t *testing.T) {
	assert.Equal(t, "251001", FormatMemberID(251001))
	assert.Equal(t, "057001", FormatMemberID(57001))
}

func TestYearCode(t *testing.T) {
	assert.Equal(t, "25", YearCode(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31", YearCode(time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)))
}
