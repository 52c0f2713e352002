package habit

import (
	"slices"
	"sort"
	"time"
)

const (
	DefaultColor = "#6366f1"
	DefaultIcon  = "📝"
)

type Habit struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Color          string     `json:"color"`
	Icon           string     `json:"icon"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedDates []string   `json:"completedDates"`
	Streak         int        `json:"streak"`
	LongestStreak  int        `json:"longestStreak"`
	LastReminded   *time.Time `json:"lastReminded,omitempty"`
}

type CreateHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// UpdateHabitRequest uses pointers so an explicit empty description clears it
// while omitted fields keep their value.
type UpdateHabitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

type ToggleRequest struct {
	Date string `json:"date"`
}

// IsCompleted does not assume CompletedDates is sorted; records written by
// older versions may not be.
func (h *Habit) IsCompleted(day string) bool {
	return slices.Contains(h.CompletedDates, day)
}

// Toggle flips day in CompletedDates, keeping the slice sorted and unique.
// It reports whether the day is completed afterwards.
func (h *Habit) Toggle(day string) bool {
	h.normalizeDates()

	i := sort.SearchStrings(h.CompletedDates, day)
	if i < len(h.CompletedDates) && h.CompletedDates[i] == day {
		h.CompletedDates = append(h.CompletedDates[:i], h.CompletedDates[i+1:]...)
		return false
	}

	h.CompletedDates = append(h.CompletedDates, "")
	copy(h.CompletedDates[i+1:], h.CompletedDates[i:])
	h.CompletedDates[i] = day
	return true
}

// Apply merges a partial update. Empty name, color or icon keep the old value.
func (h *Habit) Apply(req UpdateHabitRequest) {
	if req.Name != nil && *req.Name != "" {
		h.Name = *req.Name
	}
	if req.Description != nil {
		h.Description = *req.Description
	}
	if req.Color != nil && *req.Color != "" {
		h.Color = *req.Color
	}
	if req.Icon != nil && *req.Icon != "" {
		h.Icon = *req.Icon
	}
}

func (h *Habit) normalizeDates() {
	if h.CompletedDates == nil {
		h.CompletedDates = []string{}
		return
	}
	if sort.StringsAreSorted(h.CompletedDates) && !hasAdjacentDup(h.CompletedDates) {
		return
	}
	seen := make(map[string]struct{}, len(h.CompletedDates))
	out := h.CompletedDates[:0]
	for _, d := range h.CompletedDates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	h.CompletedDates = out
}

func hasAdjacentDup(sorted []string) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}
