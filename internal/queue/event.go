// Package queue defines message payloads exchanged over the message broker
// plus the publisher and background consumer for the audit event stream.
package queue

// AnalysisRequestedEvent is published after an analysis request has been
// served and its audit row written. It carries enough information for
// downstream consumers to log or aggregate usage without querying the
// primary database.
type AnalysisRequestedEvent struct {
    RequestID   uint64   `json:"request_id"`
    UserID      uint64   `json:"user_id"`
    Email       string   `json:"email"`
    UserType    string   `json:"user_type"`
    Datasets    []string `json:"datasets"`
    Region      string   `json:"region"`
    RequestedAt string   `json:"requested_at"`
}
