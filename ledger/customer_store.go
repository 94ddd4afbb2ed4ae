package ledger

import (
	"context"
	"fmt"
	"sort"
)

const (
	logMsgCustomerCreated  = "customer created"
	logMsgCustomerDeleted  = "customer deleted"
	logMsgCustomerModified = "customer modified"
	logAttrCustomerID      = "customer_id"
)

// CustomerStore is the persisted mapping from customer id to customer
// record. It is a leaf component with no dependencies on the other stores.
//
// Deleting a customer does not touch reservations that reference it; a
// customer may be deleted while reservations referencing it still exist.
// Ledger.Audit reports such reservations.
type CustomerStore struct {
	store
}

// CustomerUpdate carries the optional fields of a Modify call. A nil field
// is left unchanged; a provided field must be non-empty.
type CustomerUpdate struct {
	Name  *string
	Email *string
}

// NewCustomerStore creates a new CustomerStore on the given backend with
// optional configuration.
func NewCustomerStore(backend Backend, options ...Option) (*CustomerStore, error) {
	if backend == nil {
		return nil, ErrNilBackendSupplied
	}

	cfg, err := buildStoreConfig(options)
	if err != nil {
		return nil, err
	}

	return &CustomerStore{
		store: store{backend: backend, logger: cfg.logger},
	}, nil
}

// Create validates the given fields, inserts a new customer record and
// persists the store. It fails with ErrInvalidInput on an empty field and
// with ErrAlreadyExists when the id is already a key.
func (s *CustomerStore) Create(ctx context.Context, id, name, email string) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer := Customer{ID: id, Name: name, Email: email}
	if err := customer.Validate(); err != nil {
		return Customer{}, err
	}

	docs, err := s.load(ctx)
	if err != nil {
		return Customer{}, err
	}

	if _, taken := docs[id]; taken {
		return Customer{}, fmt.Errorf("customer %q: %w", id, ErrAlreadyExists)
	}

	doc, err := customer.marshal()
	if err != nil {
		return Customer{}, err
	}

	docs[id] = doc

	if err := s.save(ctx, docs); err != nil {
		return Customer{}, err
	}

	s.logInfo(logMsgCustomerCreated, logAttrCustomerID, id)

	return customer, nil
}

// Delete removes the customer with the given id and persists the store.
// It fails with ErrNotFound when the id is absent.
func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return err
	}

	if _, found := docs[id]; !found {
		return fmt.Errorf("customer %q: %w", id, ErrNotFound)
	}

	delete(docs, id)

	if err := s.save(ctx, docs); err != nil {
		return err
	}

	s.logInfo(logMsgCustomerDeleted, logAttrCustomerID, id)

	return nil
}

// Get returns the customer with the given id.
// It fails with ErrNotFound when the id is absent.
func (s *CustomerStore) Get(ctx context.Context, id string) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(ctx, id)
}

// Display returns a stable multi-line rendering of all customer fields.
// It fails with ErrNotFound when the id is absent.
func (s *CustomerStore) Display(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, err := s.get(ctx, id)
	if err != nil {
		return "", err
	}

	return customer.Render(), nil
}

// Modify applies the provided optional fields to an existing customer.
// All provided fields are validated before any of them is applied, so a
// failing call leaves the record completely unchanged.
func (s *CustomerStore) Modify(ctx context.Context, id string, update CustomerUpdate) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return Customer{}, err
	}

	doc, found := docs[id]
	if !found {
		return Customer{}, fmt.Errorf("customer %q: %w", id, ErrNotFound)
	}

	customer, err := unmarshalCustomer(doc)
	if err != nil {
		return Customer{}, err
	}

	if update.Name != nil && *update.Name == "" {
		return Customer{}, fmt.Errorf("%w: name must be a non-empty string", ErrInvalidInput)
	}

	if update.Email != nil && *update.Email == "" {
		return Customer{}, fmt.Errorf("%w: email must be a non-empty string", ErrInvalidInput)
	}

	if update.Name != nil {
		customer.Name = *update.Name
	}

	if update.Email != nil {
		customer.Email = *update.Email
	}

	doc, err = customer.marshal()
	if err != nil {
		return Customer{}, err
	}

	docs[id] = doc

	if err := s.save(ctx, docs); err != nil {
		return Customer{}, err
	}

	s.logInfo(logMsgCustomerModified, logAttrCustomerID, id)

	return customer, nil
}

// List returns all customer records ordered by id.
func (s *CustomerStore) List(ctx context.Context) ([]Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, len(docs))

	for _, doc := range docs {
		customer, err := unmarshalCustomer(doc)
		if err != nil {
			return nil, err
		}

		customers = append(customers, customer)
	}

	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })

	return customers, nil
}

// get assumes the store mutex is held.
func (s *CustomerStore) get(ctx context.Context, id string) (Customer, error) {
	docs, err := s.load(ctx)
	if err != nil {
		return Customer{}, err
	}

	doc, found := docs[id]
	if !found {
		return Customer{}, fmt.Errorf("customer %q: %w", id, ErrNotFound)
	}

	return unmarshalCustomer(doc)
}
