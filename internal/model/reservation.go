package model

import "time"

// Reservation is a claim on a room for a time interval.  Intervals are
// half-open: a reservation occupies [StartTime, EndTime), so two
// reservations that merely touch at a boundary can coexist.
//
// Fields:
//  ID            – primary key identifier.
//  RoomID        – room being reserved.
//  ResponsibleID – person accountable for the reservation.
//  StartTime     – beginning of the reserved interval.
//  EndTime       – end of the reserved interval (exclusive).
type Reservation struct {
	ID            uint64    `json:"id"`             // reservations.id
	RoomID        uint64    `json:"room_id"`        // reservations.room_id
	ResponsibleID uint64    `json:"responsible_id"` // reservations.responsible_id
	StartTime     time.Time `json:"start_time"`     // reservations.start_time
	EndTime       time.Time `json:"end_time"`       // reservations.end_time
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.  Both comparisons are strict, so intervals
// that share only a boundary instant do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// OverlapsInterval reports whether the reservation intersects the
// candidate interval [start, end).
func (r *Reservation) OverlapsInterval(start, end time.Time) bool {
	return Overlaps(r.StartTime, r.EndTime, start, end)
}

// HasConflict scans every existing reservation and reports whether any
// of them overlaps the candidate interval.  Callers must pass only the
// reservations of the room being booked; reservations of other rooms
// never conflict.  The scan is linear, no ordering is assumed.
func HasConflict(existing []Reservation, start, end time.Time) bool {
	for i := range existing {
		if existing[i].OverlapsInterval(start, end) {
			return true
		}
	}
	return false
}
