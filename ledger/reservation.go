package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Reservation links a customer to a hotel room. The ID is system-generated
// and immutable. HotelName is captured at creation time and is NOT updated
// if the hotel is later renamed.
type Reservation struct {
	ID         string `json:"reservation_id"`
	CustomerID string `json:"customer_id"`
	HotelName  string `json:"hotel_name"`
}

// Render returns a stable multi-line rendering of all fields.
func (r Reservation) Render() string {
	return fmt.Sprintf(
		"Reservation ID: %s\nCustomer ID: %s\nHotel: %s",
		r.ID, r.CustomerID, r.HotelName,
	)
}

func (r Reservation) marshal() (json.RawMessage, error) {
	doc, err := codec.Marshal(r)
	if err != nil {
		return nil, errors.Join(ErrEncodingRecordFailed, err)
	}

	return doc, nil
}

func unmarshalReservation(doc json.RawMessage) (Reservation, error) {
	var reservation Reservation

	if err := codec.Unmarshal(doc, &reservation); err != nil {
		return Reservation{}, errors.Join(ErrDecodingRecordFailed, err)
	}

	return reservation, nil
}
