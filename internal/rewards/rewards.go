package rewards

import (
	"slices"
	"time"
)

type Status string

const (
	StatusBeginner Status = "beginner"
	StatusStar     Status = "star"
	StatusAdvanced Status = "advanced"
	StatusExpert   Status = "expert"
	StatusMaster   Status = "master"
	StatusLegend   Status = "legend"
)

type Badge struct {
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	AwardedAt time.Time `json:"awardedAt"`
}

type Rewards struct {
	Stars            int     `json:"stars"`
	Badges           []Badge `json:"badges"`
	Status           Status  `json:"status"`
	StreakMilestones []int   `json:"streakMilestones"`
}

// Milestone is a one-time reward for reaching Threshold consecutive days on a habit.
type Milestone struct {
	Threshold int    `json:"threshold"`
	Stars     int    `json:"stars"`
	BadgeName string `json:"badgeName"`
	Icon      string `json:"icon"`
}

type tier struct {
	MinLongest int
	Status     Status
}

// Milestones is ordered by ascending threshold.
var Milestones = []Milestone{
	{Threshold: 7, Stars: 10, BadgeName: "7-Day Star", Icon: "⭐"},
	{Threshold: 30, Stars: 50, BadgeName: "Monthly Master", Icon: "🌙"},
	{Threshold: 50, Stars: 100, BadgeName: "50-Day Champion", Icon: "🏆"},
	{Threshold: 100, Stars: 500, BadgeName: "Century Club", Icon: "💯"},
	{Threshold: 365, Stars: 1000, BadgeName: "Year Warrior", Icon: "👑"},
}

// tiers is ordered by descending threshold; the first match wins.
var tiers = []tier{
	{365, StatusLegend},
	{100, StatusMaster},
	{50, StatusExpert},
	{30, StatusAdvanced},
	{7, StatusStar},
	{0, StatusBeginner},
}

func New() Rewards {
	return Rewards{
		Badges:           []Badge{},
		Status:           StatusBeginner,
		StreakMilestones: []int{},
	}
}

func StatusFor(bestLongest int) Status {
	for _, t := range tiers {
		if bestLongest >= t.MinLongest {
			return t.Status
		}
	}
	return StatusBeginner
}

func (r *Rewards) HasMilestone(threshold int) bool {
	return slices.Contains(r.StreakMilestones, threshold)
}

// Apply awards every milestone the habit streak has crossed that the user has not
// been given yet, then recomputes status from bestLongest. It returns only the
// milestones awarded by this call.
func Apply(r *Rewards, habitStreak, bestLongest int, now time.Time) []Milestone {
	if r.Badges == nil {
		r.Badges = []Badge{}
	}
	if r.StreakMilestones == nil {
		r.StreakMilestones = []int{}
	}

	var awarded []Milestone
	for _, m := range Milestones {
		if habitStreak < m.Threshold || r.HasMilestone(m.Threshold) {
			continue
		}
		r.StreakMilestones = append(r.StreakMilestones, m.Threshold)
		r.Stars += m.Stars
		r.Badges = append(r.Badges, Badge{Name: m.BadgeName, Icon: m.Icon, AwardedAt: now.UTC()})
		awarded = append(awarded, m)
	}

	r.Status = StatusFor(bestLongest)
	return awarded
}
