package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"main/model"
	"main/utils"

	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("user does not have a valid push token")
	ErrInvalidArgument = errors.New("either userId or allUsers must be provided")
)

// UserStore is the read contract the notifier needs from the users collection.
type UserStore interface {
	GetAllUsers(ctx context.Context) ([]model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// ActivityStore is the read contract over the activities collection.
type ActivityStore interface {
	GetUserActivitiesInRange(ctx context.Context, email string, start, end time.Time) ([]model.Activity, error)
}

// NotifierService drives the daily goal-check job and the on-demand admin
// notifications. It only reads the store; the pipeline is stateless between
// invocations.
type NotifierService struct {
	Users      UserStore
	Activities ActivityStore
	Progress   *ProgressService
	Dispatcher *Dispatcher
	Location   *time.Location
	Now        func() time.Time // injectable clock, defaults to time.Now
}

func (s *NotifierService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RunDailyCheck fetches every user, checks today's goal completion against
// logged activity and sends each user a progress notification. Failures of a
// single user are logged and counted, never fatal for the run. Only a store
// failure before the loop aborts the invocation.
func (s *NotifierService) RunDailyCheck(ctx context.Context) (model.JobSummary, error) {
	timer := utils.TrackJobRun("daily")
	defer timer.ObserveDuration()

	var summary model.JobSummary

	users, err := s.Users.GetAllUsers(ctx)
	if err != nil {
		utils.TrackError("job", "users_fetch_failed")
		return summary, fmt.Errorf("daily check aborted: %w", err)
	}

	start, end := DayWindow(s.now(), s.Location)

	for i := range users {
		user := &users[i]
		summary.Processed++

		if _, err := expo.NewExponentPushToken(user.PushToken); err != nil {
			log.Printf("Invalid or missing token for %s", user.Email)
			summary.Failed++
			continue
		}

		activities, err := s.Activities.GetUserActivitiesInRange(ctx, user.Email, start, end)
		if err != nil {
			log.Printf("Failed to fetch activities for %s: %v", user.Email, err)
			summary.Failed++
			continue
		}

		progress := s.Progress.CheckProgress(user, start, activities)

		result := s.Dispatcher.Dispatch([]model.OutboundMessage{{
			Email: user.Email,
			Token: user.PushToken,
			Title: DailyProgressTitle,
			Body:  DailyProgressBody(user.Name, progress.Complete),
		}})
		summary.Sent += result.Sent
		summary.Failed += result.Failed
	}

	log.Printf("Daily check finished: processed=%d sent=%d failed=%d",
		summary.Processed, summary.Sent, summary.Failed)
	return summary, nil
}

// NotifyUser sends the admin notification to a single user. Unlike the
// broadcast path there is no per-user tolerance: a missing user or an
// unusable token fails the whole call.
func (s *NotifierService) NotifyUser(ctx context.Context, email string) error {
	user, err := s.Users.FindUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", email, err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if _, err := expo.NewExponentPushToken(user.PushToken); err != nil {
		return ErrInvalidToken
	}

	result := s.Dispatcher.Dispatch([]model.OutboundMessage{{
		Email: user.Email,
		Token: user.PushToken,
		Title: AdminTitle,
		Body:  AdminBody,
	}})
	if result.Failed > 0 {
		return fmt.Errorf("failed to deliver notification to %s", email)
	}
	return nil
}

// NotifyAllUsers sends the admin notification to every user. The whole cohort
// is dispatched in one call so the gateway can batch across users; users with
// invalid tokens are counted failed without aborting the broadcast.
func (s *NotifierService) NotifyAllUsers(ctx context.Context) (model.JobSummary, error) {
	timer := utils.TrackJobRun("broadcast")
	defer timer.ObserveDuration()

	var summary model.JobSummary

	users, err := s.Users.GetAllUsers(ctx)
	if err != nil {
		utils.TrackError("job", "users_fetch_failed")
		return summary, fmt.Errorf("broadcast aborted: %w", err)
	}

	messages := make([]model.OutboundMessage, 0, len(users))
	for _, user := range users {
		messages = append(messages, model.OutboundMessage{
			Email: user.Email,
			Token: user.PushToken,
			Title: AdminTitle,
			Body:  AdminBody,
		})
	}
	summary.Processed = len(users)

	result := s.Dispatcher.Dispatch(messages)
	summary.Sent = result.Sent
	summary.Failed = result.Failed
	return summary, nil
}
