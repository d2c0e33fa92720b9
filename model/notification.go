package model

// OutboundMessage is a push notification addressed to one user, before token
// validation and chunking.
type OutboundMessage struct {
	Email string // Recipient bookkeeping key for dispatch results
	Token string
	Title string
	Body  string
}

// DispatchResult aggregates per-recipient outcomes of one dispatcher call.
type DispatchResult struct {
	Sent             int
	Failed           int
	FailedRecipients []string
}

// JobSummary is the roll-up of one notification job run.
type JobSummary struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}
