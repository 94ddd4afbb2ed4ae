package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/reservation-ledger-go/ledger"
	"github.com/hotelops/reservation-ledger-go/ledger/memoryengine"
)

func newCustomerStore(t *testing.T) *ledger.CustomerStore {
	t.Helper()

	store, err := ledger.NewCustomerStore(memoryengine.NewStore())
	require.NoError(t, err)

	return store
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func Test_CustomerStore_Create_ValidatesInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		custName string
		email    string
		wantErr  error
	}{
		{name: "empty_id", id: "", custName: "Ada", email: "ada@example.com", wantErr: ledger.ErrInvalidInput},
		{name: "empty_name", id: "C001", custName: "", email: "ada@example.com", wantErr: ledger.ErrInvalidInput},
		{name: "empty_email", id: "C001", custName: "Ada", email: "", wantErr: ledger.ErrInvalidInput},
		{name: "all_fields_set", id: "C001", custName: "Ada", email: "ada@example.com", wantErr: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newCustomerStore(t)

			customer, err := store.Create(ctx, tc.id, tc.custName, tc.email)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, ledger.Customer{ID: tc.id, Name: tc.custName, Email: tc.email}, customer)
		})
	}
}

func Test_CustomerStore_Create_RejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore(t)

	_, err := store.Create(ctx, "C001", "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = store.Create(ctx, "C001", "Someone Else", "else@example.com")
	assert.ErrorIs(t, err, ledger.ErrAlreadyExists)

	// the original record must be untouched
	customer, err := store.Get(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, "Ada", customer.Name)
}

func Test_CustomerStore_Display(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore(t)

	_, err := store.Create(ctx, "C001", "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	rendering, err := store.Display(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, "Customer ID: C001\nName: Ada Lovelace\nEmail: ada@example.com", rendering)

	_, err = store.Display(ctx, "unknown")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func Test_CustomerStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore(t)

	_, err := store.Create(ctx, "C001", "Ada", "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "C001"))

	_, err = store.Get(ctx, "C001")
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "C001"), ledger.ErrNotFound)

	// the id is free again after deletion
	_, err = store.Create(ctx, "C001", "Ada", "ada@example.com")
	assert.NoError(t, err)
}

func Test_CustomerStore_Modify(t *testing.T) {
	ctx := context.Background()

	t.Run("updates_only_provided_fields", func(t *testing.T) {
		store := newCustomerStore(t)
		_, err := store.Create(ctx, "C001", "Ada", "ada@example.com")
		require.NoError(t, err)

		customer, err := store.Modify(ctx, "C001", ledger.CustomerUpdate{Name: strPtr("Ada Lovelace")})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", customer.Name)
		assert.Equal(t, "ada@example.com", customer.Email)
	})

	t.Run("fails_with_not_found_for_unknown_id", func(t *testing.T) {
		store := newCustomerStore(t)

		_, err := store.Modify(ctx, "unknown", ledger.CustomerUpdate{Name: strPtr("Ada")})
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("one_invalid_field_leaves_the_record_completely_unchanged", func(t *testing.T) {
		store := newCustomerStore(t)
		_, err := store.Create(ctx, "C001", "Ada", "ada@example.com")
		require.NoError(t, err)

		_, err = store.Modify(ctx, "C001", ledger.CustomerUpdate{
			Name:  strPtr("Ada Lovelace"), // valid, but must not be applied
			Email: strPtr(""),             // invalid
		})
		assert.ErrorIs(t, err, ledger.ErrInvalidInput)

		customer, err := store.Get(ctx, "C001")
		require.NoError(t, err)
		assert.Equal(t, "Ada", customer.Name)
		assert.Equal(t, "ada@example.com", customer.Email)
	})
}

func Test_CustomerStore_List_IsOrderedByID(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore(t)

	for _, id := range []string{"C003", "C001", "C002"} {
		_, err := store.Create(ctx, id, "Name "+id, id+"@example.com")
		require.NoError(t, err)
	}

	customers, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "C001", customers[0].ID)
	assert.Equal(t, "C002", customers[1].ID)
	assert.Equal(t, "C003", customers[2].ID)
}
