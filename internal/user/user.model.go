package user

import (
	"time"

	"habitLogAPI/internal/freeze"
	"habitLogAPI/internal/habit"
	"habitLogAPI/internal/rewards"
)

type Category string

const (
	CategoryChild  Category = "child"
	CategoryTeen   Category = "teen"
	CategoryAdult  Category = "adult"
	CategorySenior Category = "senior"
)

type Settings struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
	ReminderTime  string `json:"reminderTime"`
}

// User is the unit of persistence: habits, rewards and freezes are read and
// written together as one snapshot.
type User struct {
	ID               string          `json:"id"`
	Username         string          `json:"username"`
	Email            string          `json:"email"`
	DOB              string          `json:"dob,omitempty"`
	Age              int             `json:"age"`
	Category         Category        `json:"category"`
	Habits           []habit.Habit   `json:"habits"`
	Rewards          rewards.Rewards `json:"rewards"`
	StreakFreezes    freeze.State    `json:"streakFreezes"`
	Settings         Settings        `json:"settings"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastLogin        time.Time       `json:"lastLogin"`
	LastReminderSent *time.Time      `json:"lastReminderSent"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:         "light",
		Language:      "english",
		Notifications: true,
		ReminderTime:  "09:00",
	}
}

func CategoryForAge(age int) Category {
	switch {
	case age < 13:
		return CategoryChild
	case age < 20:
		return CategoryTeen
	case age < 60:
		return CategoryAdult
	default:
		return CategorySenior
	}
}

func (u *User) FindHabit(id string) (*habit.Habit, bool) {
	for i := range u.Habits {
		if u.Habits[i].ID == id {
			return &u.Habits[i], true
		}
	}
	return nil, false
}

func (u *User) RemoveHabit(id string) bool {
	for i := range u.Habits {
		if u.Habits[i].ID == id {
			u.Habits = append(u.Habits[:i], u.Habits[i+1:]...)
			return true
		}
	}
	return false
}

// BestLongestStreak is the max longestStreak over all habits.
func (u *User) BestLongestStreak() int {
	best := 0
	for _, h := range u.Habits {
		best = max(best, h.LongestStreak)
	}
	return best
}

func (u *User) CompletionSets() [][]string {
	sets := make([][]string, 0, len(u.Habits))
	for _, h := range u.Habits {
		sets = append(sets, h.CompletedDates)
	}
	return sets
}

func (u *User) CompletedOn(day string) int {
	n := 0
	for i := range u.Habits {
		if u.Habits[i].IsCompleted(day) {
			n++
		}
	}
	return n
}

// Normalize repairs records written by older versions: nil collections and
// missing reward/freeze state.
func (u *User) Normalize() {
	if u.Habits == nil {
		u.Habits = []habit.Habit{}
	}
	for i := range u.Habits {
		if u.Habits[i].CompletedDates == nil {
			u.Habits[i].CompletedDates = []string{}
		}
	}
	if u.Rewards.Status == "" {
		u.Rewards.Status = rewards.StatusBeginner
	}
	if u.Rewards.Badges == nil {
		u.Rewards.Badges = []rewards.Badge{}
	}
	if u.Rewards.StreakMilestones == nil {
		u.Rewards.StreakMilestones = []int{}
	}
	u.StreakFreezes.Normalize()
	if u.Settings == (Settings{}) {
		u.Settings = DefaultSettings()
	}
}
