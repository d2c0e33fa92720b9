package usecase

import "fmt"

// Notification titles and bodies. The templates are fixed for compatibility
// with the mobile client's notification handling.
const (
	DailyProgressTitle = "Daily Progress Check"

	completedBodyFormat    = "Hey %s, you have completed your goals for today! 🎉"
	notCompletedBodyFormat = "Hey %s, you have not completed your goals for today. Keep going! 💪"

	AdminTitle = "Admin Notification"
	AdminBody  = "This is a notification from the admin panel."
)

// DailyProgressBody builds the body of the daily check notification.
func DailyProgressBody(name string, complete bool) string {
	if complete {
		return fmt.Sprintf(completedBodyFormat, name)
	}
	return fmt.Sprintf(notCompletedBodyFormat, name)
}
