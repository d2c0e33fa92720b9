package dto

// SendNotificationRequest is the payload of both on-demand trigger surfaces.
// Exactly one of UserID or AllUsers must be set.
type SendNotificationRequest struct {
	UserID   string `json:"userId" binding:"omitempty,email"`
	AllUsers bool   `json:"allUsers"`
}
