package model

import "time"

// Finalization is the event that closes a reservation at a given
// moment.  Finalizations are an additive side log: creating one never
// deletes or flags the reservation it refers to, and nothing prevents
// the same reservation from being finalized again later.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reservation being closed.
//  FinalizedAt   – moment the reservation effectively ended.
type Finalization struct {
	ID            uint64    `json:"id"`             // finalizations.id
	ReservationID uint64    `json:"reservation_id"` // finalizations.reservation_id
	FinalizedAt   time.Time `json:"finalized_at"`   // finalizations.finalized_at
}
