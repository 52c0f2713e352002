package user

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	DOB      string `json:"dob"`
	Language string `json:"language"`
}

// UpdateSettingsRequest leaves fields untouched when omitted.
type UpdateSettingsRequest struct {
	Theme         string `json:"theme,omitempty"`
	Language      string `json:"language,omitempty"`
	Notifications *bool  `json:"notifications,omitempty"`
	ReminderTime  string `json:"reminderTime,omitempty"`
}

// Profile is what the API returns for the current user.
type Profile struct {
	*User
	MainStreak int `json:"mainStreak"`
}

func (s *Settings) Apply(req UpdateSettingsRequest) {
	if req.Theme != "" {
		s.Theme = req.Theme
	}
	if req.Language != "" {
		s.Language = req.Language
	}
	if req.Notifications != nil {
		s.Notifications = *req.Notifications
	}
	if req.ReminderTime != "" {
		s.ReminderTime = req.ReminderTime
	}
}
