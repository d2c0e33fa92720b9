package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"main/model"
)

type fakeUserStore struct {
	users []model.User
	err   error
}

func (s *fakeUserStore) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return s.users, s.err
}

func (s *fakeUserStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i], nil
		}
	}
	return nil, nil
}

type fakeActivityStore struct {
	byUser map[string][]model.Activity
	err    error
}

func (s *fakeActivityStore) GetUserActivitiesInRange(ctx context.Context, email string, start, end time.Time) ([]model.Activity, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Activity
	for _, a := range s.byUser[email] {
		if a.CreatedAt.Before(start) || a.CreatedAt.After(end) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func newTestNotifier(users *fakeUserStore, activities *fakeActivityStore, gateway *fakeGateway) *NotifierService {
	return &NotifierService{
		Users:      users,
		Activities: activities,
		Progress:   NewProgressService(),
		Dispatcher: NewDispatcher(gateway),
		Location:   ist,
		Now:        func() time.Time { return monday(18) },
	}
}

func TestRunDailyCheck(t *testing.T) {
	readingGoal := map[string]model.Goal{
		"Reading": {Title: "Reading", Frequency: "Mo", Duration: model.GoalDuration{Minutes: 30}},
	}

	users := &fakeUserStore{users: []model.User{
		{Email: "done@example.com", Name: "Ann", PushToken: validToken(1), Goals: readingGoal},
		{Email: "behind@example.com", Name: "Ben", PushToken: validToken(2), Goals: readingGoal},
		{Email: "tokenless@example.com", Name: "Cal", Goals: readingGoal},
	}}
	activities := &fakeActivityStore{byUser: map[string][]model.Activity{
		"done@example.com": {
			{User: "done@example.com", CreatedAt: monday(9), Duration: 1800},
			// Outside today's window, must not count.
			{User: "done@example.com", CreatedAt: monday(9).AddDate(0, 0, -1), Duration: 9999},
		},
		"behind@example.com": {
			{User: "behind@example.com", CreatedAt: monday(9), Duration: 600},
		},
	}}
	gateway := &fakeGateway{}

	notifier := newTestNotifier(users, activities, gateway)
	summary, err := notifier.RunDailyCheck(context.Background())
	if err != nil {
		t.Fatal("daily check failed:", err)
	}

	if summary.Processed != 3 || summary.Sent != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	var bodies []string
	for _, chunk := range gateway.chunks {
		for _, msg := range chunk {
			if msg.Title != DailyProgressTitle {
				t.Fatalf("wrong title %q", msg.Title)
			}
			bodies = append(bodies, msg.Body)
		}
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 dispatched messages, got %d", len(bodies))
	}
	if !strings.Contains(bodies[0], "Ann") || !strings.Contains(bodies[0], "completed your goals") {
		t.Fatalf("wrong body for complete user: %q", bodies[0])
	}
	if !strings.Contains(bodies[1], "Ben") || !strings.Contains(bodies[1], "not completed") {
		t.Fatalf("wrong body for incomplete user: %q", bodies[1])
	}
}

func TestRunDailyCheckStoreUnavailable(t *testing.T) {
	users := &fakeUserStore{err: errors.New("connection refused")}
	notifier := newTestNotifier(users, &fakeActivityStore{}, &fakeGateway{})

	if _, err := notifier.RunDailyCheck(context.Background()); err == nil {
		t.Fatal("expected fatal error when the user store is unreachable")
	}
}

func TestRunDailyCheckActivityFetchIsolated(t *testing.T) {
	users := &fakeUserStore{users: []model.User{
		{Email: "a@example.com", Name: "A", PushToken: validToken(1)},
		{Email: "b@example.com", Name: "B", PushToken: validToken(2)},
	}}
	activities := &fakeActivityStore{err: errors.New("cursor timeout")}
	gateway := &fakeGateway{}

	notifier := newTestNotifier(users, activities, gateway)
	summary, err := notifier.RunDailyCheck(context.Background())
	if err != nil {
		t.Fatal("per-user fetch errors must not abort the job:", err)
	}
	if summary.Failed != 2 || summary.Sent != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestNotifyAllUsers(t *testing.T) {
	users := &fakeUserStore{users: []model.User{
		{Email: "u1@example.com", PushToken: validToken(1)},
		{Email: "u2@example.com", PushToken: "bogus"},
		{Email: "u3@example.com", PushToken: validToken(3)},
	}}
	gateway := &fakeGateway{}

	notifier := newTestNotifier(users, &fakeActivityStore{}, gateway)
	summary, err := notifier.NotifyAllUsers(context.Background())
	if err != nil {
		t.Fatal("broadcast failed:", err)
	}

	if summary.Sent != 2 || summary.Failed != 1 {
		t.Fatalf("expected 2 sent / 1 failed, got %+v", summary)
	}
	if len(gateway.chunks) != 1 || len(gateway.chunks[0]) != 2 {
		t.Fatalf("broadcast should dispatch the valid cohort in one chunk, got %v", gateway.chunks)
	}
	for _, msg := range gateway.chunks[0] {
		if msg.Title != AdminTitle || msg.Body != AdminBody {
			t.Fatalf("broadcast carried wrong content: %+v", msg)
		}
	}
}

func TestNotifyUser(t *testing.T) {
	users := &fakeUserStore{users: []model.User{
		{Email: "ok@example.com", PushToken: validToken(1)},
		{Email: "tokenless@example.com"},
	}}

	t.Run("Success", func(t *testing.T) {
		gateway := &fakeGateway{}
		notifier := newTestNotifier(users, &fakeActivityStore{}, gateway)
		if err := notifier.NotifyUser(context.Background(), "ok@example.com"); err != nil {
			t.Fatal("expected success:", err)
		}
		if len(gateway.chunks) != 1 {
			t.Fatalf("expected one submission, got %d", len(gateway.chunks))
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		gateway := &fakeGateway{}
		notifier := newTestNotifier(users, &fakeActivityStore{}, gateway)
		err := notifier.NotifyUser(context.Background(), "missing@example.com")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if len(gateway.chunks) != 0 {
			t.Fatal("no dispatch may be attempted for a missing user")
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {
		gateway := &fakeGateway{}
		notifier := newTestNotifier(users, &fakeActivityStore{}, gateway)
		err := notifier.NotifyUser(context.Background(), "tokenless@example.com")
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
		if len(gateway.chunks) != 0 {
			t.Fatal("no dispatch may be attempted without a valid token")
		}
	})

	t.Run("GatewayFailure", func(t *testing.T) {
		gateway := &fakeGateway{failOn: map[int]bool{0: true}}
		notifier := newTestNotifier(users, &fakeActivityStore{}, gateway)
		if err := notifier.NotifyUser(context.Background(), "ok@example.com"); err == nil {
			t.Fatal("expected delivery failure to surface on the single-user path")
		}
	})
}

func TestRunDailyCheckIdempotent(t *testing.T) {
	users := &fakeUserStore{users: []model.User{
		{Email: "a@example.com", Name: "A", PushToken: validToken(1), Goals: map[string]model.Goal{
			"Walk": {Title: "Walk", Frequency: "Mo", Duration: model.GoalDuration{Minutes: 10}},
		}},
	}}
	activities := &fakeActivityStore{byUser: map[string][]model.Activity{
		"a@example.com": {{User: "a@example.com", CreatedAt: monday(10), Duration: 700}},
	}}

	first, err := newTestNotifier(users, activities, &fakeGateway{}).RunDailyCheck(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := newTestNotifier(users, activities, &fakeGateway{}).RunDailyCheck(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("re-running with unchanged data changed the outcome: %+v vs %+v", first, second)
	}
}
