// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationFinalizedEvent is published after a finalization and its
// history snapshot commit.  It carries enough information for
// downstream consumers to log or notify without querying the primary
// database.  Timestamps are RFC 3339 strings.
type ReservationFinalizedEvent struct {
	FinalizationID uint64 `json:"finalization_id"`
	ReservationID  uint64 `json:"reservation_id"`
	RoomID         uint64 `json:"room_id"`
	ResponsibleID  uint64 `json:"responsible_id"`
	StartedAt      string `json:"started_at"`
	FinalizedAt    string `json:"finalized_at"`
}
