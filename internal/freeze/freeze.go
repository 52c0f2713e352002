package freeze

import (
	"fmt"
	"slices"
	"strings"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/streak"
	"habitLogAPI/utils"
)

const (
	// MaxAvailable caps how many unspent freezes a user can hold.
	MaxAvailable = 2
	// MinRunLength is the consecutive-day run that earns a freeze.
	MinRunLength = 3

	keyPrefix = "streak_"
)

type EventType string

const (
	EventEarned  EventType = "earned"
	EventApplied EventType = "applied"
)

type Event struct {
	Date         string    `json:"date"`
	Type         EventType `json:"type"`
	StreakLength int       `json:"streakLength,omitempty"`
	AppliedTo    string    `json:"appliedTo,omitempty"`
}

type State struct {
	Available         int      `json:"available"`
	Used              int      `json:"used"`
	History           []Event  `json:"history"`
	AppliedDays       []string `json:"appliedDays"`
	AwardedStreakKeys []string `json:"awardedStreakKeys"`
}

// Award describes one freeze earned by Scan.
type Award struct {
	Key       string `json:"key"`
	RunLength int    `json:"runLength"`
}

type run struct {
	start  string
	end    string
	length int
}

type interval struct {
	from string
	to   string
}

func New() State {
	return State{
		History:           []Event{},
		AppliedDays:       []string{},
		AwardedStreakKeys: []string{},
	}
}

// Normalize fills nil slices and clamps Available to 0..MaxAvailable.
func (s *State) Normalize() {
	if s.History == nil {
		s.History = []Event{}
	}
	if s.AppliedDays == nil {
		s.AppliedDays = []string{}
	}
	if s.AwardedStreakKeys == nil {
		s.AwardedStreakKeys = []string{}
	}
	s.Available = max(0, min(s.Available, MaxAvailable))
}

// RunKey identifies a run by its first day and the day it reached MinRunLength.
func RunKey(start string) string {
	return keyPrefix + start + "_" + utils.DayBefore(start, -(MinRunLength-1))
}

func parseKey(key string) (interval, bool) {
	rest, ok := strings.CutPrefix(key, keyPrefix)
	if !ok {
		return interval{}, false
	}
	from, to, ok := strings.Cut(rest, "_")
	if !ok || !utils.ValidDay(from) || !utils.ValidDay(to) {
		return interval{}, false
	}
	if to < from {
		from, to = to, from
	}
	return interval{from: from, to: to}, true
}

func runs(dates []string) []run {
	var out []run
	var cur *run
	for _, d := range streak.Union(dates) {
		if !utils.ValidDay(d) {
			continue
		}
		if cur != nil {
			if diff, err := utils.DaysBetween(cur.end, d); err == nil && diff == 1 {
				cur.end = d
				cur.length++
				continue
			}
			out = append(out, *cur)
		}
		cur = &run{start: d, end: d, length: 1}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// Scan walks the union of completion dates and awards one freeze per unrewarded
// run of MinRunLength or more days while the user holds fewer than MaxAvailable.
// A run is treated as rewarded when any recorded key overlaps it, so growing,
// shrinking or merging a run never pays out twice. Runs skipped because of the
// cap are left unrecorded and can still be rewarded by a later scan.
func Scan(s *State, dates []string, today string) []Award {
	s.Normalize()

	var rewarded []interval
	for _, k := range s.AwardedStreakKeys {
		if iv, ok := parseKey(k); ok {
			rewarded = append(rewarded, iv)
		}
	}

	var awards []Award
	for _, r := range runs(dates) {
		if r.length < MinRunLength {
			continue
		}
		key := RunKey(r.start)
		if slices.Contains(s.AwardedStreakKeys, key) || overlaps(rewarded, r) {
			continue
		}
		if s.Available >= MaxAvailable {
			continue
		}

		s.Available++
		s.AwardedStreakKeys = append(s.AwardedStreakKeys, key)
		s.History = append(s.History, Event{Date: today, Type: EventEarned, StreakLength: r.length})
		if iv, ok := parseKey(key); ok {
			rewarded = append(rewarded, iv)
		}
		awards = append(awards, Award{Key: key, RunLength: r.length})
	}

	s.Normalize()
	return awards
}

func overlaps(ivs []interval, r run) bool {
	for _, iv := range ivs {
		if iv.from <= r.end && r.start <= iv.to {
			return true
		}
	}
	return false
}

// Apply spends one freeze to protect target. It does not add a completion.
func Apply(s *State, target, today string) error {
	s.Normalize()

	if !utils.ValidDay(target) {
		return fmt.Errorf("apply freeze to %q: %w", target, apperrors.InvalidDate)
	}
	if s.Available <= 0 {
		return apperrors.NoFreezeAvailable
	}
	if slices.Contains(s.AppliedDays, target) {
		return apperrors.AlreadyApplied
	}

	s.Available--
	s.Used++
	s.AppliedDays = append(s.AppliedDays, target)
	s.History = append(s.History, Event{Date: today, Type: EventApplied, AppliedTo: target})
	return nil
}
