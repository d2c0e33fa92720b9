package usecase

import (
	"errors"
	"fmt"
	"testing"

	"main/model"

	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

type fakeGateway struct {
	chunks  [][]expo.PushMessage
	failOn  map[int]bool // chunk index -> submission error
	nextIdx int
}

func (g *fakeGateway) PublishMultiple(messages []expo.PushMessage) ([]expo.PushResponse, error) {
	idx := g.nextIdx
	g.nextIdx++
	g.chunks = append(g.chunks, messages)
	if g.failOn[idx] {
		return nil, errors.New("gateway unreachable")
	}
	responses := make([]expo.PushResponse, len(messages))
	for i := range responses {
		responses[i] = expo.PushResponse{Status: expo.SuccessStatus}
	}
	return responses, nil
}

func validToken(i int) string {
	return fmt.Sprintf("ExponentPushToken[device-%04d]", i)
}

func outbound(n int) []model.OutboundMessage {
	messages := make([]model.OutboundMessage, n)
	for i := range messages {
		messages[i] = model.OutboundMessage{
			Email: fmt.Sprintf("user%d@example.com", i),
			Token: validToken(i),
			Title: AdminTitle,
			Body:  AdminBody,
		}
	}
	return messages
}

func TestDispatchTokenValidation(t *testing.T) {
	gateway := &fakeGateway{}
	d := NewDispatcher(gateway)

	messages := []model.OutboundMessage{
		{Email: "good@example.com", Token: validToken(1), Title: "t", Body: "b"},
		{Email: "empty@example.com", Token: "", Title: "t", Body: "b"},
		{Email: "garbage@example.com", Token: "not-a-push-token", Title: "t", Body: "b"},
	}

	result := d.Dispatch(messages)

	if result.Sent != 1 || result.Failed != 2 {
		t.Fatalf("expected 1 sent / 2 failed, got %+v", result)
	}
	if len(gateway.chunks) != 1 || len(gateway.chunks[0]) != 1 {
		t.Fatalf("invalid tokens must never reach the gateway: %v", gateway.chunks)
	}
	if len(result.FailedRecipients) != 2 {
		t.Fatalf("expected 2 failed recipients, got %v", result.FailedRecipients)
	}
}

func TestDispatchChunking(t *testing.T) {
	gateway := &fakeGateway{}
	d := NewDispatcher(gateway)

	result := d.Dispatch(outbound(MaxChunkSize*2 + 5))

	if result.Sent != MaxChunkSize*2+5 || result.Failed != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(gateway.chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(gateway.chunks))
	}
	for i, chunk := range gateway.chunks {
		if len(chunk) > MaxChunkSize {
			t.Fatalf("chunk %d exceeds gateway limit: %d messages", i, len(chunk))
		}
	}
}

func TestDispatchChunkFailureIsolated(t *testing.T) {
	gateway := &fakeGateway{failOn: map[int]bool{0: true}}
	d := &Dispatcher{Gateway: gateway, ChunkSize: 2}

	result := d.Dispatch(outbound(5))

	// First chunk of 2 fails as a group; remaining chunks still submit.
	if result.Failed != 2 || result.Sent != 3 {
		t.Fatalf("expected 3 sent / 2 failed, got %+v", result)
	}
	if len(gateway.chunks) != 3 {
		t.Fatalf("submission stopped after a failed chunk: %d chunks", len(gateway.chunks))
	}
	if len(result.FailedRecipients) != 2 {
		t.Fatalf("expected both recipients of the bad chunk failed, got %v", result.FailedRecipients)
	}
}

func TestDispatchEmptyInput(t *testing.T) {
	gateway := &fakeGateway{}
	d := NewDispatcher(gateway)

	result := d.Dispatch(nil)
	if result.Sent != 0 || result.Failed != 0 || len(gateway.chunks) != 0 {
		t.Fatalf("empty dispatch should be a no-op, got %+v", result)
	}
}
