package chatbot

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"habitLogAPI/internal/streak"
	"habitLogAPI/internal/user"
	"habitLogAPI/utils"
)

type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentName        Intent = "name"
	IntentAge         Intent = "age"
	IntentStreak      Intent = "streak"
	IntentProgress    Intent = "progress"
	IntentHabitCount  Intent = "habits"
	IntentTips        Intent = "tips"
	IntentAgeTip      Intent = "age_tip"
	IntentHabit       Intent = "habit"
	IntentStatus      Intent = "status"
	IntentRewards     Intent = "rewards"
	IntentHealth      Intent = "health"
	IntentConsistency Intent = "consistency"
	IntentMotivation  Intent = "motivation"
	IntentFreezes     Intent = "freezes"
	IntentHelp        Intent = "help"
	IntentUnknown     Intent = "unknown"
)

type AskRequest struct {
	Message string `json:"message"`
}

type AskResponse struct {
	Response string `json:"response"`
	Intent   Intent `json:"intent"`
}

type rule struct {
	intent Intent
	// words match whole tokens, phrases match anywhere in the message.
	words   []string
	phrases []string
	// requires must also appear in the message for the rule to match.
	requires string
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{intent: IntentGreeting, words: []string{"hello", "hi", "hey"}},
	{intent: IntentName, phrases: []string{"name", "who are you"}},
	{intent: IntentAge, phrases: []string{"how old"}, words: []string{"age"}},
	{intent: IntentStreak, phrases: []string{"streak", "days in a row"}},
	{intent: IntentProgress, phrases: []string{"progress", "how am i doing"}},
	{intent: IntentTips, phrases: []string{"tip", "advice", "suggest"}, requires: "habit"},
	{intent: IntentHabitCount, phrases: []string{"how many habits", "what habits", "my habits"}},
	{intent: IntentHabit, phrases: []string{"habit"}},
	{intent: IntentStatus, phrases: []string{"status", "level"}},
	{intent: IntentRewards, phrases: []string{"reward", "badge"}, words: []string{"star", "stars"}},
	{intent: IntentHealth, phrases: []string{"health", "wellness"}},
	{intent: IntentConsistency, phrases: []string{"consisten", "regular"}},
	{intent: IntentMotivation, phrases: []string{"motivat", "inspire", "encourage"}},
	{intent: IntentAgeTip, phrases: []string{"tip", "advice", "suggest"}},
	{intent: IntentFreezes, phrases: []string{"freeze"}},
	{intent: IntentHelp, phrases: []string{"help", "support"}},
}

var ageTips = map[user.Category]string{
	user.CategoryChild:  "Make habit tracking fun! Try turning your habits into a game. Every completed habit is a point scored! 🎮",
	user.CategoryTeen:   "This is the perfect time to build lifelong habits. Start small, stay consistent, and watch yourself grow! 🌱",
	user.CategoryAdult:  "Balance is key. Focus on habits that improve your health, career, and relationships. You've got this! 💼",
	user.CategorySenior: "It's never too late to build healthy habits. Small daily actions can greatly improve your quality of life! 🌟",
}

// Classify maps a free-text message to an intent.
func Classify(message string) Intent {
	msg := strings.ToLower(strings.TrimSpace(message))
	tokens := strings.FieldsFunc(msg, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
	})

	for _, r := range rules {
		if r.requires != "" && !strings.Contains(msg, r.requires) {
			continue
		}
		if slices.ContainsFunc(r.words, func(w string) bool { return slices.Contains(tokens, w) }) {
			return r.intent
		}
		if slices.ContainsFunc(r.phrases, func(p string) bool { return strings.Contains(msg, p) }) {
			return r.intent
		}
	}
	return IntentUnknown
}

// Respond answers message using u's live data. now supplies the age reference
// and today the main streak reference day.
func Respond(u *user.User, message, today string, now time.Time) AskResponse {
	intent := Classify(message)

	age := u.Age
	if dob, err := utils.ParseDay(u.DOB); err == nil {
		age = utils.AgeOn(dob, now)
	}
	category := user.CategoryForAge(age)

	var text string
	switch intent {
	case IntentGreeting:
		text = fmt.Sprintf("Hello %s! 👋 I'm your HabitLog assistant. How can I help you today?", u.Username)
	case IntentName:
		text = fmt.Sprintf("Your name is %s", u.Username)
	case IntentAge:
		text = fmt.Sprintf("You are %d years old. You are in the %s category.", age, category)
	case IntentStreak:
		mainStreak := streak.Main(u.CompletionSets(), today)
		text = fmt.Sprintf("Your current streak is %d days. You've been consistent for %d %s in a row! Your best streak ever is %d days.",
			mainStreak, mainStreak, plural(mainStreak, "day", "days"), u.BestLongestStreak())
	case IntentProgress:
		text = fmt.Sprintf("Your progress is looking great! You've completed %d out of %d habits today.",
			u.CompletedOn(today), len(u.Habits))
	case IntentHabitCount:
		text = fmt.Sprintf("You are currently tracking %d %s.", len(u.Habits), plural(len(u.Habits), "habit", "habits"))
	case IntentTips:
		text = "Here are some tips for building habits: 1. Start small 2. Be consistent 3. Track your progress 4. Celebrate small wins 5. Don't break the chain! 🌟"
	case IntentAgeTip:
		text = ageTips[category]
	case IntentHabit:
		text = "Habits are the small decisions you make and actions you perform every day. Good habits can transform your life."
	case IntentStatus:
		text = fmt.Sprintf("Your current status is: %s", u.Rewards.Status)
	case IntentRewards:
		text = fmt.Sprintf("You have %d stars and %d badges.", u.Rewards.Stars, len(u.Rewards.Badges))
	case IntentHealth:
		text = "Health is a state of complete physical, mental, and social well-being. By maintaining good habits, you can achieve optimal health."
	case IntentConsistency:
		text = "Consistency is the key to success. Small daily improvements lead to stunning results over time."
	case IntentMotivation:
		text = "Keep going! Every day is a new opportunity to become better. You've got this! 💪"
	case IntentFreezes:
		text = fmt.Sprintf("You have %d streak freeze(s) available. You earn 1 freeze for every 3-day streak, and can store up to 2 freezes. Freezes protect your streak when you miss a day!",
			u.StreakFreezes.Available)
	case IntentHelp:
		text = "I can help you with: your streaks, habits, progress, rewards, health tips, and motivation. What would you like to know?"
	default:
		text = "I'm sorry, I didn't understand that. Could you please rephrase? Try asking about: 'my streak', 'health tips', 'motivation', 'freezes', or 'my status'!"
	}

	return AskResponse{Response: text, Intent: intent}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
