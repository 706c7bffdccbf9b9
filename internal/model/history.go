package model

import "time"

// HistoryEntry is a denormalized snapshot of a reservation taken at
// finalization time.  It copies the reservation's room, responsible and
// start, and records the finalization moment as the actual end.  The
// snapshot has a lifecycle of its own: deleting the reservation later
// does not touch the archive.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reservation the snapshot was taken from.
//  RoomID        – room that was occupied.
//  ResponsibleID – person who held the reservation.
//  StartTime     – start of the reserved interval.
//  EndTimeActual – moment the reservation was finalized.
type HistoryEntry struct {
	ID            uint64    `json:"id"`              // history.id
	ReservationID uint64    `json:"reservation_id"`  // history.reservation_id
	RoomID        uint64    `json:"room_id"`         // history.room_id
	ResponsibleID uint64    `json:"responsible_id"`  // history.responsible_id
	StartTime     time.Time `json:"start_time"`      // history.start_time
	EndTimeActual time.Time `json:"end_time_actual"` // history.end_time_actual
}
