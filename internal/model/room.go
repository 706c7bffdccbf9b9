package model

// Room represents a bookable physical space together with the key that
// opens it.  Rooms are referenced by reservations and by history
// snapshots; the name fields may change over time but the identity of
// the room is its ID.
//
// Fields:
//  ID      – primary key identifier.
//  Name    – human readable room name.
//  KeyName – label of the physical key assigned to the room.
type Room struct {
	ID      uint64 `json:"id"`       // rooms.id
	Name    string `json:"name"`     // rooms.name
	KeyName string `json:"key_name"` // rooms.key_name
}
