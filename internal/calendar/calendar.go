package calendar

import (
	"fmt"
	"slices"
	"time"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/user"
	"habitLogAPI/utils"
)

type CalendarDay struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Frozen    bool   `json:"frozen"`
	IsToday   bool   `json:"isToday"`
}

type CalendarResponse struct {
	Year        int            `json:"year"`
	Month       int            `json:"month"`
	TotalHabits int            `json:"totalHabits"`
	Days        []*CalendarDay `json:"days"`
}

// Month lays out every day of year/month with how many habits were completed
// and whether a streak freeze covers it.
func Month(u *user.User, year, month int, today string) (*CalendarResponse, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return nil, fmt.Errorf("calendar %d-%d: %w", year, month, apperrors.InvalidRequest)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	resp := &CalendarResponse{
		Year:        year,
		Month:       month,
		TotalHabits: len(u.Habits),
		Days:        []*CalendarDay{},
	}

	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		day := utils.FormatDay(d)
		resp.Days = append(resp.Days, &CalendarDay{
			Date:      day,
			Completed: u.CompletedOn(day),
			Frozen:    slices.Contains(u.StreakFreezes.AppliedDays, day),
			IsToday:   day == today,
		})
	}
	return resp, nil
}
