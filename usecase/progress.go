package usecase

import (
	"log"
	"strings"
	"time"

	"main/model"
	"main/utils"

	"github.com/go-playground/validator/v10"
)

// dayCodes maps time.Weekday (0 = Sunday) to the two-letter codes used in
// goal frequency strings.
var dayCodes = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Progress is the result of checking one user's activity against their goals
// for a single day.
type Progress struct {
	TargetSeconds int64
	ActualSeconds int64
	Complete      bool
}

// ProgressService computes daily goal completion. Goal entries failing shape
// validation are skipped, not fatal.
type ProgressService struct {
	Validate *validator.Validate
}

func NewProgressService() *ProgressService {
	return &ProgressService{Validate: validator.New()}
}

// DayWindow returns the inclusive daily window [00:00:00.000, 23:59:59.999]
// for the given instant in the given zone.
func DayWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	// Derive the end from the next calendar midnight rather than adding 24h,
	// so the window stays inside the day across DST transitions.
	end := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc).Add(-time.Millisecond)
	return start, end
}

// GoalsForDay returns the user's goals whose frequency includes the weekday
// of the given day.
func (s *ProgressService) GoalsForDay(user *model.User, day time.Time) []model.Goal {
	code := dayCodes[int(day.Weekday())]

	var active []model.Goal
	for name, goal := range user.Goals {
		if err := s.Validate.Struct(goal); err != nil {
			utils.TrackError("aggregation", "malformed_goal")
			log.Printf("Skipping malformed goal %q for %s: %v", name, user.Email, err)
			continue
		}
		for _, c := range strings.Split(goal.Frequency, ",") {
			if strings.TrimSpace(c) == code {
				active = append(active, goal)
				break
			}
		}
	}
	return active
}

// CheckProgress sums the day's goal targets and activity durations. A user
// with no active goals is trivially complete.
func (s *ProgressService) CheckProgress(user *model.User, day time.Time, activities []model.Activity) Progress {
	var target int64
	for _, goal := range s.GoalsForDay(user, day) {
		target += goal.Duration.Seconds()
	}

	var actual int64
	for _, activity := range activities {
		actual += activity.Duration
	}

	return Progress{
		TargetSeconds: target,
		ActualSeconds: actual,
		Complete:      actual >= target,
	}
}
