package model

import "time"

// Activity is a single logged block of time spent, attributed to a user by email.
type Activity struct {
	User      string    `bson:"user" json:"user"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	Duration  int64     `bson:"duration" json:"duration"` // seconds
}
