package config

import (
	"fmt"
	"time"

	"main/utils"
)

// NotifierConfig holds the settings for the daily goal-check job and the
// on-demand notification triggers.
type NotifierConfig struct {
	Timezone      string // IANA zone the daily window is computed in
	CronSpec      string // when the daily check runs, in the configured zone
	TriggerSecret string // bearer secret for the HTTP trigger endpoint
}

func LoadNotifierConfig() NotifierConfig {
	return NotifierConfig{
		Timezone:      utils.GetEnvAsString("NOTIFY_TIMEZONE", "Asia/Kolkata"),
		CronSpec:      utils.GetEnvAsString("NOTIFY_CRON", "0 12 * * *"),
		TriggerSecret: utils.GetEnvAsString("NOTIFY_TRIGGER_SECRET", ""),
	}
}

// Location resolves the configured time zone.
func (c NotifierConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
