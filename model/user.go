package model

// GoalDuration is the daily time target for a single goal.
type GoalDuration struct {
	Hours   int `bson:"hours" json:"hours" validate:"min=0"`
	Minutes int `bson:"minutes" json:"minutes" validate:"min=0"`
}

// Seconds converts the target into seconds for comparison with activity totals.
func (d GoalDuration) Seconds() int64 {
	return int64(d.Hours)*3600 + int64(d.Minutes)*60
}

// Goal is a recurring target with a weekly schedule. Frequency is a
// comma-joined list of two-letter weekday codes, e.g. "Mo,We,Fr".
type Goal struct {
	Title     string       `bson:"title" json:"title" validate:"required"`
	Frequency string       `bson:"frequency" json:"frequency"`
	Duration  GoalDuration `bson:"duration" json:"duration"`
}

type User struct {
	Email     string          `bson:"email" json:"email"`                 // Primary identifier, activities reference it
	Name      string          `bson:"name" json:"name"`                   // Used for message personalization
	PushToken string          `bson:"expoPushToken" json:"expoPushToken"` // Opaque Expo push token, may be missing
	Goals     map[string]Goal `bson:"goals" json:"goals"`                 // Keyed by goal name
	Friends   []string        `bson:"friends" json:"friends"`
}
