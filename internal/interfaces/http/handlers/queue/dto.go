package queue

import (
	"lineup/internal/application/queue/usecases"
)

type JoinQueueRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Email string `json:"email,omitempty" binding:"omitempty,email,max=255"`
}

func (r *JoinQueueRequest) ToCommand(clientKey string) usecases.JoinQueueCommand {
	return usecases.JoinQueueCommand{
		Name:      r.Name,
		Email:     r.Email,
		ClientKey: clientKey,
	}
}

// ResetQueueRequest guards the destructive reset behind an explicit
// confirmation field.
type ResetQueueRequest struct {
	Confirm bool `json:"confirm"`
}

type JoinQueueResponse struct {
	Number         int    `json:"number"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	CurrentServing int    `json:"current_serving"`
	Generation     int    `json:"generation"`
	CreatedAt      string `json:"created_at"`
}

type AdvanceQueueResponse struct {
	CurrentServing int  `json:"current_serving"`
	LastIssued     int  `json:"last_issued"`
	Generation     int  `json:"generation"`
	Advanced       bool `json:"advanced"`
}

type ResetQueueResponse struct {
	CurrentServing int `json:"current_serving"`
	Generation     int `json:"generation"`
}

type ShareResponse struct {
	JoinURL    string `json:"join_url"`
	QRImageURL string `json:"qr_image_url"`
}
