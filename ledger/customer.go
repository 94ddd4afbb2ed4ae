package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Customer represents a customer who can make reservations.
// The ID is the unique, immutable store key; Name and Email are mutable.
type Customer struct {
	ID    string `json:"customer_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks the record invariant: all fields must be non-empty.
func (c Customer) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: customer id must be a non-empty string", ErrInvalidInput)
	}

	if c.Name == "" {
		return fmt.Errorf("%w: name must be a non-empty string", ErrInvalidInput)
	}

	if c.Email == "" {
		return fmt.Errorf("%w: email must be a non-empty string", ErrInvalidInput)
	}

	return nil
}

// Render returns a stable multi-line rendering of all fields.
func (c Customer) Render() string {
	return fmt.Sprintf(
		"Customer ID: %s\nName: %s\nEmail: %s",
		c.ID, c.Name, c.Email,
	)
}

func (c Customer) marshal() (json.RawMessage, error) {
	doc, err := codec.Marshal(c)
	if err != nil {
		return nil, errors.Join(ErrEncodingRecordFailed, err)
	}

	return doc, nil
}

func unmarshalCustomer(doc json.RawMessage) (Customer, error) {
	var customer Customer

	if err := codec.Unmarshal(doc, &customer); err != nil {
		return Customer{}, errors.Join(ErrDecodingRecordFailed, err)
	}

	return customer, nil
}
