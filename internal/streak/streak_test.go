package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"habitLogAPI/utils"
)

const today = "2024-06-15"

func daysEndingAt(end string, n int) []string {
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, utils.DayBefore(end, i))
	}
	return out
}

func TestComputeEmpty(t *testing.T) {
	assert.Equal(t, 0, Compute(nil, today))
	assert.Equal(t, 0, Compute([]string{}, today))
}

func TestComputeRequiresAsOf(t *testing.T) {
	dates := daysEndingAt(utils.DayBefore(today, 1), 10)
	assert.Equal(t, 0, Compute(dates, today))
}

func TestComputeConsecutive(t *testing.T) {
	assert.Equal(t, 1, Compute([]string{today}, today))
	assert.Equal(t, 3, Compute(daysEndingAt(today, 3), today))
}

func TestComputeIgnoresOlderRuns(t *testing.T) {
	dates := append(daysEndingAt("2024-05-01", 20), daysEndingAt(today, 4)...)
	assert.Equal(t, 4, Compute(dates, today))
}

func TestComputeUnorderedWithDuplicates(t *testing.T) {
	dates := []string{today, "2024-06-13", "2024-06-14", today, "2024-06-14"}
	assert.Equal(t, 3, Compute(dates, today))
}

func TestComputeCapsLookback(t *testing.T) {
	dates := daysEndingAt(today, 500)
	assert.Equal(t, MaxLookback+1, Compute(dates, today))
}

func TestComputeAcrossMonthAndLeapDay(t *testing.T) {
	dates := []string{"2024-02-28", "2024-02-29", "2024-03-01"}
	assert.Equal(t, 3, Compute(dates, "2024-03-01"))
}

func TestLongest(t *testing.T) {
	assert.Equal(t, 5, Longest(5, 3))
	assert.Equal(t, 7, Longest(5, 7))
	assert.Equal(t, 0, Longest(0, 0))
}

func TestMainUsesUnion(t *testing.T) {
	a := []string{today, "2024-06-13"}
	b := []string{"2024-06-14"}

	assert.Equal(t, 1, Compute(a, today))
	assert.Equal(t, 3, Main([][]string{a, b}, today))
	assert.Equal(t, 0, Main(nil, today))
}

func TestUnionSortedUnique(t *testing.T) {
	got := Union([]string{"2024-01-03", "2024-01-01"}, []string{"2024-01-01", "2024-01-02"})
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, got)
}
