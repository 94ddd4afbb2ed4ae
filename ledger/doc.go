// Package ledger provides the core types and store implementations for a
// minimal hotel reservation ledger.
//
// Three peer stores, each a persisted mapping from a unique key to a record,
// are manipulated through a small CRUD-plus-domain-operation surface:
//   - CustomerStore: customer id -> {name, email}
//   - HotelStore: hotel name -> {location, total rooms, reserved rooms}
//   - ReservationStore: reservation id -> {customer id, hotel name}
//
// The ReservationStore owns the only cross-store protocol: creating a
// reservation validates both foreign keys and increments the hotel's
// reserved-room counter before the reservation record is written, and
// cancelling decrements the counter before the record is removed.
//
// Persistence is delegated to a Backend, which loads and saves a whole
// store mapping per operation (full read-modify-write, no partial update).
// Backend implementations live in the fileengine, memoryengine and
// postgresengine packages.
//
// Common usage pattern:
//
//	customers, _ := ledger.NewCustomerStore(customersBackend)
//	hotels, _ := ledger.NewHotelStore(hotelsBackend)
//	reservations, _ := ledger.NewReservationStore(reservationsBackend, customers, hotels)
//
//	_, err := hotels.Create(ctx, "Plaza", "CDMX", 2)
//	if err != nil {
//		// handle error
//	}
//
//	reservation, err := reservations.Create(ctx, "C001", "Plaza")
//	if errors.Is(err, ledger.ErrCapacityExceeded) {
//		// hotel is fully booked
//	}
package ledger
