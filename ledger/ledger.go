package ledger

import (
	"context"
)

const (
	logMsgAuditCompleted = "room counter audit completed"
	logMsgDriftRepaired  = "drifted room counter repaired"
	logAttrDriftCount    = "drifted_hotels"
	logAttrOrphanCount   = "orphaned_reservations"
)

// Ledger bundles the three stores behind one handle and offers the
// audit operation that cross-checks the room-capacity invariant: for every
// live reservation there is exactly one increment counted in its hotel's
// reserved-room counter.
type Ledger struct {
	customers    *CustomerStore
	hotels       *HotelStore
	reservations *ReservationStore
	logger       Logger
}

// Drift describes one hotel whose persisted reserved-room counter disagrees
// with the number of live reservations referencing it.
type Drift struct {
	HotelName          string
	ReservedRooms      int // counter as persisted
	ActiveReservations int // recomputed from the live reservation set
}

// AuditReport is the result of cross-checking the reservation set against
// the hotel counters.
//
// Orphans lists reservations whose hotel or customer no longer exists:
// hotels and customers are deleted unconditionally, so dangling references
// are a documented possibility.
type AuditReport struct {
	Drifts  []Drift
	Orphans []Reservation
}

// Clean reports whether the audit found neither drift nor orphans.
func (r AuditReport) Clean() bool {
	return len(r.Drifts) == 0 && len(r.Orphans) == 0
}

// New creates a Ledger over already-constructed stores.
func New(
	customers *CustomerStore,
	hotels *HotelStore,
	reservations *ReservationStore,
	options ...Option,
) (*Ledger, error) {

	if customers == nil || hotels == nil || reservations == nil {
		return nil, ErrNilStoreSupplied
	}

	cfg, err := buildStoreConfig(options)
	if err != nil {
		return nil, err
	}

	return &Ledger{
		customers:    customers,
		hotels:       hotels,
		reservations: reservations,
		logger:       cfg.logger,
	}, nil
}

// Customers returns the customer store.
func (l *Ledger) Customers() *CustomerStore { return l.customers }

// Hotels returns the hotel store.
func (l *Ledger) Hotels() *HotelStore { return l.hotels }

// Reservations returns the reservation store.
func (l *Ledger) Reservations() *ReservationStore { return l.reservations }

// Audit recomputes each hotel's active-reservation count from the live
// reservation set and reports every hotel whose persisted counter disagrees,
// plus every reservation referencing a deleted hotel or customer. The
// stores are not modified.
//
// The audit reads the three stores in separate load cycles; run it while no
// other operation is in flight.
func (l *Ledger) Audit(ctx context.Context) (AuditReport, error) {
	hotels, err := l.hotels.List(ctx)
	if err != nil {
		return AuditReport{}, err
	}

	reservations, err := l.reservations.List(ctx)
	if err != nil {
		return AuditReport{}, err
	}

	customers, err := l.customers.List(ctx)
	if err != nil {
		return AuditReport{}, err
	}

	knownHotels := make(map[string]bool, len(hotels))
	for _, hotel := range hotels {
		knownHotels[hotel.Name] = true
	}

	knownCustomers := make(map[string]bool, len(customers))
	for _, customer := range customers {
		knownCustomers[customer.ID] = true
	}

	activeByHotel := make(map[string]int, len(hotels))
	report := AuditReport{}

	for _, reservation := range reservations {
		if !knownHotels[reservation.HotelName] || !knownCustomers[reservation.CustomerID] {
			report.Orphans = append(report.Orphans, reservation)
		}

		if knownHotels[reservation.HotelName] {
			activeByHotel[reservation.HotelName]++
		}
	}

	for _, hotel := range hotels {
		if active := activeByHotel[hotel.Name]; active != hotel.ReservedRooms {
			report.Drifts = append(report.Drifts, Drift{
				HotelName:          hotel.Name,
				ReservedRooms:      hotel.ReservedRooms,
				ActiveReservations: active,
			})
		}
	}

	if l.logger != nil {
		l.logger.Info(logMsgAuditCompleted,
			logAttrDriftCount, len(report.Drifts),
			logAttrOrphanCount, len(report.Orphans),
		)
	}

	return report, nil
}

// Repair runs an Audit and then overwrites each drifted hotel's reserved
// counter with the recomputed active-reservation count. Orphaned
// reservations are reported but never removed; resolving them is a caller
// decision. The returned report describes the state before repair.
func (l *Ledger) Repair(ctx context.Context) (AuditReport, error) {
	report, err := l.Audit(ctx)
	if err != nil {
		return AuditReport{}, err
	}

	for _, drift := range report.Drifts {
		if err := l.hotels.setReservedRooms(ctx, drift.HotelName, drift.ActiveReservations); err != nil {
			return report, err
		}

		if l.logger != nil {
			l.logger.Info(logMsgDriftRepaired,
				logAttrHotelName, drift.HotelName,
				logAttrReserved, drift.ActiveReservations,
			)
		}
	}

	return report, nil
}
