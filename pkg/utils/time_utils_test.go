package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayCountInclusive(t *testing.T) {
	start, err := ParseDateKST("2026-03-01")
	require.NoError(t, err)
	end, err := ParseDateKST("2026-03-03")
	require.NoError(t, err)

	assert.Equal(t, 3, DayCount(start, end))
	assert.Equal(t, 1, DayCount(start, start))
}

func TestDayCountReversedRange(t *testing.T) {
	start, _ := ParseDateKST("2026-03-05")
	end, _ := ParseDateKST("2026-03-01")

	assert.Equal(t, 0, DayCount(start, end))
}

func TestExpandDates(t *testing.T) {
	start, err := ParseDateKST("2026-02-27")
	require.NoError(t, err)

	dates := ExpandDates(start, 3)
	assert.Equal(t, []string{"2026-02-27", "2026-02-28", "2026-03-01"}, dates)
}

func TestParseDateKSTRejectsGarbage(t *testing.T) {
	_, err := ParseDateKST("03/01/2026")
	assert.Error(t, err)
}
