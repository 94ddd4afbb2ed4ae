package fileengine

import (
	"path/filepath"

	"github.com/hotelops/reservation-ledger-go/ledger"
)

// Store file names inside a data directory, matching the layout the ledger
// has always used on disk.
const (
	CustomersFileName    = "customers.json"
	HotelsFileName       = "hotels.json"
	ReservationsFileName = "reservations.json"
)

// OpenLedger wires a complete Ledger to three file-backed stores under one
// data directory. A nil logger disables logging. The directory is created
// lazily on the first write.
func OpenLedger(dir string, logger ledger.Logger) (*ledger.Ledger, error) {
	if dir == "" {
		return nil, ErrEmptyPathSupplied
	}

	backends := make([]*Store, 0, 3)

	for _, name := range []string{CustomersFileName, HotelsFileName, ReservationsFileName} {
		backend, err := NewStore(filepath.Join(dir, name), WithLogger(logger))
		if err != nil {
			return nil, err
		}

		backends = append(backends, backend)
	}

	customers, err := ledger.NewCustomerStore(backends[0], ledger.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	hotels, err := ledger.NewHotelStore(backends[1], ledger.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	reservations, err := ledger.NewReservationStore(backends[2], customers, hotels, ledger.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return ledger.New(customers, hotels, reservations, ledger.WithLogger(logger))
}
