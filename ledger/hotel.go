package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Hotel represents a hotel with rooms that can be reserved.
// The Name is the unique store key; renaming re-keys the store entry.
// ReservedRooms only changes through ReserveRoom and CancelRoom (or an
// explicit audit repair) and always stays within [0, TotalRooms].
type Hotel struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	TotalRooms    int    `json:"total_rooms"`
	ReservedRooms int    `json:"reserved_rooms"`
}

// Validate checks the record invariants: non-empty name and location,
// a positive room count, and a reserved count within bounds.
func (h Hotel) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("%w: hotel name must be a non-empty string", ErrInvalidInput)
	}

	if h.Location == "" {
		return fmt.Errorf("%w: location must be a non-empty string", ErrInvalidInput)
	}

	if h.TotalRooms <= 0 {
		return fmt.Errorf("%w: total rooms must be a positive integer", ErrInvalidInput)
	}

	if h.ReservedRooms < 0 || h.ReservedRooms > h.TotalRooms {
		return fmt.Errorf("%w: reserved rooms must be within [0, total rooms]", ErrInvalidInput)
	}

	return nil
}

// AvailableRooms returns the derived free-room count.
func (h Hotel) AvailableRooms() int {
	return h.TotalRooms - h.ReservedRooms
}

// Render returns a stable multi-line rendering of all fields plus the
// derived available-room count.
func (h Hotel) Render() string {
	return fmt.Sprintf(
		"Hotel: %s\nLocation: %s\nTotal Rooms: %d\nReserved Rooms: %d\nAvailable Rooms: %d",
		h.Name, h.Location, h.TotalRooms, h.ReservedRooms, h.AvailableRooms(),
	)
}

func (h Hotel) marshal() (json.RawMessage, error) {
	doc, err := codec.Marshal(h)
	if err != nil {
		return nil, errors.Join(ErrEncodingRecordFailed, err)
	}

	return doc, nil
}

// unmarshalHotel decodes a hotel document. Legacy documents without a
// reserved_rooms field decode to a reserved count of zero.
func unmarshalHotel(doc json.RawMessage) (Hotel, error) {
	var hotel Hotel

	if err := codec.Unmarshal(doc, &hotel); err != nil {
		return Hotel{}, errors.Join(ErrDecodingRecordFailed, err)
	}

	return hotel, nil
}
