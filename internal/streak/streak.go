package streak

import (
	"sort"

	"habitLogAPI/utils"
)

// MaxLookback bounds how many days Compute walks backwards from asOf.
const MaxLookback = 365

type Streak struct {
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	AsOf          string `json:"asOf"`
}

// Compute returns the number of consecutive days ending at asOf that are in dates.
// It is 0 when asOf itself is missing.
func Compute(dates []string, asOf string) int {
	if len(dates) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return computeSet(set, asOf)
}

func computeSet(set map[string]struct{}, asOf string) int {
	if _, ok := set[asOf]; !ok {
		return 0
	}

	count := 1
	check := asOf
	for i := 0; i < MaxLookback; i++ {
		check = utils.DayBefore(check, 1)
		if _, ok := set[check]; !ok {
			break
		}
		count++
	}
	return count
}

func Longest(previous, current int) int {
	if current > previous {
		return current
	}
	return previous
}

// Union merges several completion sets into one sorted, de-duplicated slice.
func Union(sets ...[]string) []string {
	seen := make(map[string]struct{})
	for _, s := range sets {
		for _, d := range s {
			seen[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Main is the streak of days on which at least one habit was completed.
// It is a dashboard metric and never feeds per-habit rewards.
func Main(sets [][]string, asOf string) int {
	return Compute(Union(sets...), asOf)
}

// Normalize returns dates sorted ascending without duplicates.
func Normalize(dates []string) []string {
	return Union(dates)
}
