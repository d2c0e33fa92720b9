package usecase

import (
	"log"

	"main/model"
	"main/utils"

	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

// MaxChunkSize is the Expo push API's documented maximum messages per request.
const MaxChunkSize = 100

// PushGateway is the batched-submission contract of the push service. The
// production implementation is *expo.PushClient; tests inject fakes.
type PushGateway interface {
	PublishMultiple(messages []expo.PushMessage) ([]expo.PushResponse, error)
}

type Dispatcher struct {
	Gateway   PushGateway
	ChunkSize int
}

func NewDispatcher(gateway PushGateway) *Dispatcher {
	return &Dispatcher{
		Gateway:   gateway,
		ChunkSize: MaxChunkSize,
	}
}

type pendingPush struct {
	email string
	push  expo.PushMessage
}

// Dispatch validates tokens, chunks the valid messages to the gateway limit
// and submits each chunk. A chunk submission error fails every recipient in
// that chunk; remaining chunks are still submitted. Messages with invalid or
// missing tokens are rejected locally without a network call.
func (d *Dispatcher) Dispatch(messages []model.OutboundMessage) model.DispatchResult {
	var result model.DispatchResult

	var valid []pendingPush
	for _, msg := range messages {
		token, err := expo.NewExponentPushToken(msg.Token)
		if err != nil {
			utils.TrackError("dispatch", "invalid_token")
			log.Printf("Invalid or missing token for %s", msg.Email)
			result.Failed++
			result.FailedRecipients = append(result.FailedRecipients, msg.Email)
			continue
		}
		valid = append(valid, pendingPush{
			email: msg.Email,
			push: expo.PushMessage{
				To:       []expo.ExponentPushToken{token},
				Title:    msg.Title,
				Body:     msg.Body,
				Sound:    "default",
				Priority: expo.HighPriority,
			},
		})
	}

	chunkSize := d.ChunkSize
	if chunkSize <= 0 || chunkSize > MaxChunkSize {
		chunkSize = MaxChunkSize
	}

	for start := 0; start < len(valid); start += chunkSize {
		end := start + chunkSize
		if end > len(valid) {
			end = len(valid)
		}
		chunk := valid[start:end]

		pushes := make([]expo.PushMessage, 0, len(chunk))
		for _, p := range chunk {
			pushes = append(pushes, p.push)
		}

		responses, err := d.Gateway.PublishMultiple(pushes)
		if err != nil {
			utils.TrackPushChunk("error")
			log.Printf("Push gateway chunk submission failed: %v", err)
			for _, p := range chunk {
				result.Failed++
				result.FailedRecipients = append(result.FailedRecipients, p.email)
			}
			continue
		}
		utils.TrackPushChunk("ok")
		result.Sent += len(chunk)

		// Receipt-level errors are logged for operations but do not change
		// chunk-level accounting; delivery succeeded at the gateway.
		for i, resp := range responses {
			if err := resp.ValidateResponse(); err != nil && i < len(chunk) {
				log.Printf("Push receipt error for %s: %v", chunk[i].email, err)
			}
		}
	}

	utils.TrackPushMessages("sent", result.Sent)
	utils.TrackPushMessages("failed", result.Failed)
	return result
}
