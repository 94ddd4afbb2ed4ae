package ledger

import (
	"context"
	"fmt"
	"sort"
)

const (
	logMsgHotelCreated  = "hotel created"
	logMsgHotelDeleted  = "hotel deleted"
	logMsgHotelModified = "hotel modified"
	logMsgHotelRenamed  = "hotel renamed"
	logMsgRoomReserved  = "room reserved"
	logMsgRoomCanceled  = "room reservation canceled"
	logMsgCounterSet    = "reserved room counter set"
	logAttrHotelName    = "hotel_name"
	logAttrNewHotelName = "new_hotel_name"
	logAttrReserved     = "reserved_rooms"
)

// HotelStore is the persisted mapping from hotel name to hotel record.
// It owns the room-capacity invariant: reserved rooms never exceed total
// rooms and never go negative.
//
// Deletion is unconditional; a hotel may be deleted while its reserved
// counter is non-zero. Ledger.Audit reports reservations left behind.
type HotelStore struct {
	store
}

// HotelUpdate carries the optional fields of a Modify call. A nil field is
// left unchanged. A new name that equals the current name is a no-op with
// respect to the store key.
type HotelUpdate struct {
	Name       *string
	Location   *string
	TotalRooms *int
}

// NewHotelStore creates a new HotelStore on the given backend with optional
// configuration.
func NewHotelStore(backend Backend, options ...Option) (*HotelStore, error) {
	if backend == nil {
		return nil, ErrNilBackendSupplied
	}

	cfg, err := buildStoreConfig(options)
	if err != nil {
		return nil, err
	}

	return &HotelStore{
		store: store{backend: backend, logger: cfg.logger},
	}, nil
}

// Create validates the given fields, inserts a new hotel record with zero
// reserved rooms and persists the store. It fails with ErrInvalidInput on an
// empty field or non-positive room count and with ErrAlreadyExists when the
// name is already taken.
func (s *HotelStore) Create(ctx context.Context, name, location string, totalRooms int) (Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hotel := Hotel{Name: name, Location: location, TotalRooms: totalRooms}
	if err := hotel.Validate(); err != nil {
		return Hotel{}, err
	}

	docs, err := s.load(ctx)
	if err != nil {
		return Hotel{}, err
	}

	if _, taken := docs[name]; taken {
		return Hotel{}, fmt.Errorf("hotel %q: %w", name, ErrAlreadyExists)
	}

	doc, err := hotel.marshal()
	if err != nil {
		return Hotel{}, err
	}

	docs[name] = doc

	if err := s.save(ctx, docs); err != nil {
		return Hotel{}, err
	}

	s.logInfo(logMsgHotelCreated, logAttrHotelName, name)

	return hotel, nil
}

// Delete removes the hotel with the given name and persists the store.
// It fails with ErrNotFound when the name is absent. There is no check that
// the reserved counter is zero; deletion is unconditional.
func (s *HotelStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return err
	}

	if _, found := docs[name]; !found {
		return fmt.Errorf("hotel %q: %w", name, ErrNotFound)
	}

	delete(docs, name)

	if err := s.save(ctx, docs); err != nil {
		return err
	}

	s.logInfo(logMsgHotelDeleted, logAttrHotelName, name)

	return nil
}

// Get returns the hotel with the given name.
// It fails with ErrNotFound when the name is absent.
func (s *HotelStore) Get(ctx context.Context, name string) (Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(ctx, name)
}

// Display returns a stable multi-line rendering of all hotel fields plus
// the derived available-room count.
// It fails with ErrNotFound when the name is absent.
func (s *HotelStore) Display(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hotel, err := s.get(ctx, name)
	if err != nil {
		return "", err
	}

	return hotel.Render(), nil
}

// Modify applies the provided optional fields to an existing hotel.
//
// All provided fields are validated before any of them is applied, so a
// failing call leaves the record completely unchanged. The total room count
// may not shrink below the current reserved count. Renaming moves the
// record to the new key, preserving the reserved counter and any location
// or room-count changes applied in the same call; it fails with
// ErrAlreadyExists when the new name is already a key.
func (s *HotelStore) Modify(ctx context.Context, name string, update HotelUpdate) (Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return Hotel{}, err
	}

	doc, found := docs[name]
	if !found {
		return Hotel{}, fmt.Errorf("hotel %q: %w", name, ErrNotFound)
	}

	hotel, err := unmarshalHotel(doc)
	if err != nil {
		return Hotel{}, err
	}

	if update.Location != nil && *update.Location == "" {
		return Hotel{}, fmt.Errorf("%w: location must be a non-empty string", ErrInvalidInput)
	}

	if update.TotalRooms != nil {
		if *update.TotalRooms <= 0 {
			return Hotel{}, fmt.Errorf("%w: total rooms must be a positive integer", ErrInvalidInput)
		}

		if *update.TotalRooms < hotel.ReservedRooms {
			return Hotel{}, fmt.Errorf("%w: cannot set total rooms below reserved rooms", ErrInvalidInput)
		}
	}

	renaming := update.Name != nil && *update.Name != name
	if renaming {
		if *update.Name == "" {
			return Hotel{}, fmt.Errorf("%w: hotel name must be a non-empty string", ErrInvalidInput)
		}

		if _, taken := docs[*update.Name]; taken {
			return Hotel{}, fmt.Errorf("hotel %q: %w", *update.Name, ErrAlreadyExists)
		}
	}

	if update.Location != nil {
		hotel.Location = *update.Location
	}

	if update.TotalRooms != nil {
		hotel.TotalRooms = *update.TotalRooms
	}

	if renaming {
		hotel.Name = *update.Name
	}

	doc, err = hotel.marshal()
	if err != nil {
		return Hotel{}, err
	}

	if renaming {
		delete(docs, name)
	}

	docs[hotel.Name] = doc

	if err := s.save(ctx, docs); err != nil {
		return Hotel{}, err
	}

	if renaming {
		s.logInfo(logMsgHotelRenamed, logAttrHotelName, name, logAttrNewHotelName, hotel.Name)
	} else {
		s.logInfo(logMsgHotelModified, logAttrHotelName, name)
	}

	return hotel, nil
}

// ReserveRoom increments the reserved room counter by one and persists the
// store. It fails with ErrNotFound when the hotel is absent and with
// ErrCapacityExceeded when all rooms are already reserved.
func (s *HotelStore) ReserveRoom(ctx context.Context, name string) (Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return Hotel{}, err
	}

	doc, found := docs[name]
	if !found {
		return Hotel{}, fmt.Errorf("hotel %q: %w", name, ErrNotFound)
	}

	hotel, err := unmarshalHotel(doc)
	if err != nil {
		return Hotel{}, err
	}

	if hotel.ReservedRooms >= hotel.TotalRooms {
		return Hotel{}, fmt.Errorf("hotel %q: %w", name, ErrCapacityExceeded)
	}

	hotel.ReservedRooms++

	doc, err = hotel.marshal()
	if err != nil {
		return Hotel{}, err
	}

	docs[name] = doc

	if err := s.save(ctx, docs); err != nil {
		return Hotel{}, err
	}

	s.logInfo(logMsgRoomReserved, logAttrHotelName, name, logAttrReserved, hotel.ReservedRooms)

	return hotel, nil
}

// CancelRoom decrements the reserved room counter by one and persists the
// store. It fails with ErrNotFound when the hotel is absent and with
// ErrInvalidState when no rooms are currently reserved.
func (s *HotelStore) CancelRoom(ctx context.Context, name string) (Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return Hotel{}, err
	}

	doc, found := docs[name]
	if !found {
		return Hotel{}, fmt.Errorf("hotel %q: %w", name, ErrNotFound)
	}

	hotel, err := unmarshalHotel(doc)
	if err != nil {
		return Hotel{}, err
	}

	if hotel.ReservedRooms <= 0 {
		return Hotel{}, fmt.Errorf("hotel %q: %w", name, ErrInvalidState)
	}

	hotel.ReservedRooms--

	doc, err = hotel.marshal()
	if err != nil {
		return Hotel{}, err
	}

	docs[name] = doc

	if err := s.save(ctx, docs); err != nil {
		return Hotel{}, err
	}

	s.logInfo(logMsgRoomCanceled, logAttrHotelName, name, logAttrReserved, hotel.ReservedRooms)

	return hotel, nil
}

// List returns all hotel records ordered by name.
func (s *HotelStore) List(ctx context.Context) ([]Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	hotels := make([]Hotel, 0, len(docs))

	for _, doc := range docs {
		hotel, err := unmarshalHotel(doc)
		if err != nil {
			return nil, err
		}

		hotels = append(hotels, hotel)
	}

	sort.Slice(hotels, func(i, j int) bool { return hotels[i].Name < hotels[j].Name })

	return hotels, nil
}

// setReservedRooms overwrites the reserved counter, used by audit repair to
// realign a drifted counter with the live reservation set. The new value
// must stay within [0, total rooms].
func (s *HotelStore) setReservedRooms(ctx context.Context, name string, reserved int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return err
	}

	doc, found := docs[name]
	if !found {
		return fmt.Errorf("hotel %q: %w", name, ErrNotFound)
	}

	hotel, err := unmarshalHotel(doc)
	if err != nil {
		return err
	}

	hotel.ReservedRooms = reserved
	if err := hotel.Validate(); err != nil {
		return err
	}

	doc, err = hotel.marshal()
	if err != nil {
		return err
	}

	docs[name] = doc

	if err := s.save(ctx, docs); err != nil {
		return err
	}

	s.logInfo(logMsgCounterSet, logAttrHotelName, name, logAttrReserved, reserved)

	return nil
}

// get assumes the store mutex is held.
func (s *HotelStore) get(ctx context.Context, name string) (Hotel, error) {
	docs, err := s.load(ctx)
	if err != nil {
		return Hotel{}, err
	}

	doc, found := docs[name]
	if !found {
		return Hotel{}, fmt.Errorf("hotel %q: %w", name, ErrNotFound)
	}

	return unmarshalHotel(doc)
}
