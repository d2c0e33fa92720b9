package handler

import (
	"errors"
	"fmt"
	"log"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Notifier *usecase.NotifierService
}

func NewNotificationHandler(notifier *usecase.NotifierService) *NotificationHandler {
	return &NotificationHandler{Notifier: notifier}
}

// SendNotification is the callable variant used by the authenticated admin
// panel: one user or a broadcast, reporting a summary message.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req dto.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("notify", "invalid_request")
		utils.BadRequest(c, "Invalid Request")
		return
	}

	switch {
	case req.AllUsers:
		summary, err := h.Notifier.NotifyAllUsers(c.Request.Context())
		if err != nil {
			log.Printf("Broadcast failed: %v", err)
			utils.InternalError(c, "Error sending notification")
			return
		}
		utils.Success(c, fmt.Sprintf("Notifications sent to %d users. Failed: %d",
			summary.Sent, summary.Failed), nil)

	case req.UserID != "":
		err := h.Notifier.NotifyUser(c.Request.Context(), req.UserID)
		switch {
		case err == nil:
			utils.Success(c, "Notification sent successfully", nil)
		case errors.Is(err, usecase.ErrUserNotFound):
			utils.NotFound(c, "User not found")
		case errors.Is(err, usecase.ErrInvalidToken):
			utils.PreconditionFailed(c, "User does not have a valid push token")
		default:
			log.Printf("Notification error for %s: %v", req.UserID, err)
			utils.InternalError(c, "Error sending notification")
		}

	default:
		utils.TrackError("notify", "invalid_argument")
		utils.BadRequest(c, "Either userId or allUsers must be provided")
	}
}

// TriggerNotification is the plain HTTP variant of the on-demand dispatch,
// protected by the static trigger secret instead of a session token.
func (h *NotificationHandler) TriggerNotification(c *gin.Context) {
	h.SendNotification(c)
}

// RunDailyCheck lets operators fire the scheduled goal check outside its cron
// slot, e.g. after a data backfill. Same secret as the trigger endpoint.
func (h *NotificationHandler) RunDailyCheck(c *gin.Context) {
	summary, err := h.Notifier.RunDailyCheck(c.Request.Context())
	if err != nil {
		log.Printf("Daily check failed: %v", err)
		utils.InternalError(c, "Daily check failed")
		return
	}
	utils.Success(c, fmt.Sprintf("Daily check complete. Sent: %d. Failed: %d",
		summary.Sent, summary.Failed), summary)
}
