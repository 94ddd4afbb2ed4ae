package ledger

import (
	"context"
	"fmt"
	"sort"
)

const (
	logMsgReservationCreated  = "reservation created"
	logMsgReservationCanceled = "reservation canceled"
	logMsgOrphanedRoomHold    = "room held without reservation record"
	logAttrReservationID      = "reservation_id"
)

// ReservationStore is the persisted mapping from reservation id to
// reservation record. It owns the cross-store protocol: reservations are
// created and cancelled only through the combined operation that couples
// the record to the hotel's reserved-room counter.
//
// A single mutex inside the store spans the whole combined operation, so
// the two-store sequence is never interleaved with another reservation
// operation. The two underlying writes are still independent
// load-modify-write cycles with no transaction across them: a crash
// between the hotel counter write and the reservation record write leaves
// the documented partial state (an orphaned room hold on create, a ghost
// record on cancel). Ledger.Audit detects and Ledger.Repair resolves the
// counter side of such drift.
type ReservationStore struct {
	store
	customers *CustomerStore
	hotels    *HotelStore
	ids       IDGenerator
}

// NewReservationStore creates a new ReservationStore on the given backend
// with optional configuration. The customer and hotel stores are required
// collaborators for foreign-key validation and counter coupling. Without
// WithIDGenerator, a ShortIDGenerator is used.
func NewReservationStore(
	backend Backend,
	customers *CustomerStore,
	hotels *HotelStore,
	options ...Option,
) (*ReservationStore, error) {

	if backend == nil {
		return nil, ErrNilBackendSupplied
	}

	if customers == nil || hotels == nil {
		return nil, ErrNilStoreSupplied
	}

	cfg, err := buildStoreConfig(options)
	if err != nil {
		return nil, err
	}

	if cfg.ids == nil {
		cfg.ids = ShortIDGenerator{}
	}

	return &ReservationStore{
		store:     store{backend: backend, logger: cfg.logger},
		customers: customers,
		hotels:    hotels,
		ids:       cfg.ids,
	}, nil
}

// Create makes a reservation for a customer at a hotel.
//
// It validates that the customer and the hotel exist (ErrNotFound
// otherwise), reserves one room at the hotel, then generates a new unique
// identifier and persists the reservation record. A capacity failure from
// the hotel propagates unchanged and nothing is persisted: the two
// existence checks plus the counter increment form the atomic unit of the
// protocol.
func (s *ReservationStore) Create(ctx context.Context, customerID, hotelName string) (Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return Reservation{}, err
	}

	if _, err := s.hotels.Get(ctx, hotelName); err != nil {
		return Reservation{}, err
	}

	if _, err := s.hotels.ReserveRoom(ctx, hotelName); err != nil {
		return Reservation{}, err
	}

	reservation := Reservation{
		ID:         s.ids.NewID(),
		CustomerID: customerID,
		HotelName:  hotelName,
	}

	// Past this point the hotel counter is already incremented. A failure
	// while writing the reservation record leaves an orphaned room hold,
	// which Ledger.Audit can detect.
	docs, err := s.load(ctx)
	if err != nil {
		s.logWarn(logMsgOrphanedRoomHold, logAttrHotelName, hotelName)
		return Reservation{}, err
	}

	doc, err := reservation.marshal()
	if err != nil {
		s.logWarn(logMsgOrphanedRoomHold, logAttrHotelName, hotelName)
		return Reservation{}, err
	}

	docs[reservation.ID] = doc

	if err := s.save(ctx, docs); err != nil {
		s.logWarn(logMsgOrphanedRoomHold, logAttrHotelName, hotelName)
		return Reservation{}, err
	}

	s.logInfo(logMsgReservationCreated,
		logAttrReservationID, reservation.ID,
		logAttrCustomerID, customerID,
		logAttrHotelName, hotelName,
	)

	return reservation, nil
}

// Cancel removes an existing reservation and frees the hotel room.
//
// It fails with ErrNotFound when the reservation id is absent; cancelling
// an already-cancelled id is a failure, not a no-op. The hotel counter is
// decremented on the captured hotel name before the record is removed, so
// an interruption between the two steps leaves a ghost reservation whose
// hotel-side effect has already been undone. A failure from the hotel
// store (for example an inconsistent counter) propagates unchanged and the
// record stays in place.
func (s *ReservationStore) Cancel(ctx context.Context, reservationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return err
	}

	doc, found := docs[reservationID]
	if !found {
		return fmt.Errorf("reservation %q: %w", reservationID, ErrNotFound)
	}

	reservation, err := unmarshalReservation(doc)
	if err != nil {
		return err
	}

	if _, err := s.hotels.CancelRoom(ctx, reservation.HotelName); err != nil {
		return err
	}

	delete(docs, reservationID)

	if err := s.save(ctx, docs); err != nil {
		return err
	}

	s.logInfo(logMsgReservationCanceled,
		logAttrReservationID, reservationID,
		logAttrHotelName, reservation.HotelName,
	)

	return nil
}

// Get returns the reservation with the given id.
// It fails with ErrNotFound when the id is absent.
func (s *ReservationStore) Get(ctx context.Context, reservationID string) (Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return Reservation{}, err
	}

	doc, found := docs[reservationID]
	if !found {
		return Reservation{}, fmt.Errorf("reservation %q: %w", reservationID, ErrNotFound)
	}

	return unmarshalReservation(doc)
}

// List returns all reservation records ordered by id.
func (s *ReservationStore) List(ctx context.Context) ([]Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	reservations := make([]Reservation, 0, len(docs))

	for _, doc := range docs {
		reservation, err := unmarshalReservation(doc)
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, reservation)
	}

	sort.Slice(reservations, func(i, j int) bool { return reservations[i].ID < reservations[j].ID })

	return reservations, nil
}
