package ledger_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/reservation-ledger-go/ledger"
	"github.com/hotelops/reservation-ledger-go/ledger/memoryengine"
)

func newHotelStore(t *testing.T) (*ledger.HotelStore, *memoryengine.Store) {
	t.Helper()

	backend := memoryengine.NewStore()
	store, err := ledger.NewHotelStore(backend)
	require.NoError(t, err)

	return store, backend
}

func Test_HotelStore_Create_ValidatesInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		hotelName string
		location  string
		rooms     int
		wantErr   error
	}{
		{name: "empty_name", hotelName: "", location: "CDMX", rooms: 2, wantErr: ledger.ErrInvalidInput},
		{name: "empty_location", hotelName: "Plaza", location: "", rooms: 2, wantErr: ledger.ErrInvalidInput},
		{name: "zero_rooms", hotelName: "Plaza", location: "CDMX", rooms: 0, wantErr: ledger.ErrInvalidInput},
		{name: "negative_rooms", hotelName: "Plaza", location: "CDMX", rooms: -3, wantErr: ledger.ErrInvalidInput},
		{name: "valid_hotel", hotelName: "Plaza", location: "CDMX", rooms: 2, wantErr: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, _ := newHotelStore(t)

			hotel, err := store.Create(ctx, tc.hotelName, tc.location, tc.rooms)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 0, hotel.ReservedRooms)
			assert.Equal(t, tc.rooms, hotel.AvailableRooms())
		})
	}
}

func Test_HotelStore_Display_IncludesDerivedAvailability(t *testing.T) {
	ctx := context.Background()
	store, _ := newHotelStore(t)

	_, err := store.Create(ctx, "Plaza", "CDMX", 5)
	require.NoError(t, err)

	rendering, err := store.Display(ctx, "Plaza")
	require.NoError(t, err)
	assert.Equal(t,
		"Hotel: Plaza\nLocation: CDMX\nTotal Rooms: 5\nReserved Rooms: 0\nAvailable Rooms: 5",
		rendering)

	_, err = store.ReserveRoom(ctx, "Plaza")
	require.NoError(t, err)

	rendering, err = store.Display(ctx, "Plaza")
	require.NoError(t, err)
	assert.Contains(t, rendering, "Reserved Rooms: 1")
	assert.Contains(t, rendering, "Available Rooms: 4")
}

func Test_HotelStore_ReserveAndCancelRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("reserve_then_cancel_is_net_zero", func(t *testing.T) {
		store, _ := newHotelStore(t)
		_, err := store.Create(ctx, "Plaza", "CDMX", 3)
		require.NoError(t, err)

		_, err = store.ReserveRoom(ctx, "Plaza")
		require.NoError(t, err)

		hotel, err := store.CancelRoom(ctx, "Plaza")
		require.NoError(t, err)
		assert.Equal(t, 0, hotel.ReservedRooms)
	})

	t.Run("reserve_fails_at_full_occupancy", func(t *testing.T) {
		store, _ := newHotelStore(t)
		_, err := store.Create(ctx, "Plaza", "CDMX", 2)
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			_, err = store.ReserveRoom(ctx, "Plaza")
			require.NoError(t, err)
		}

		_, err = store.ReserveRoom(ctx, "Plaza")
		assert.ErrorIs(t, err, ledger.ErrCapacityExceeded)

		hotel, err := store.Get(ctx, "Plaza")
		require.NoError(t, err)
		assert.Equal(t, 2, hotel.ReservedRooms)
	})

	t.Run("cancel_fails_with_nothing_reserved", func(t *testing.T) {
		store, _ := newHotelStore(t)
		_, err := store.Create(ctx, "Plaza", "CDMX", 2)
		require.NoError(t, err)

		_, err = store.CancelRoom(ctx, "Plaza")
		assert.ErrorIs(t, err, ledger.ErrInvalidState)
	})

	t.Run("both_fail_with_not_found_for_unknown_hotel", func(t *testing.T) {
		store, _ := newHotelStore(t)

		_, err := store.ReserveRoom(ctx, "unknown")
		assert.ErrorIs(t, err, ledger.ErrNotFound)

		_, err = store.CancelRoom(ctx, "unknown")
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})
}

func Test_HotelStore_Modify(t *testing.T) {
	ctx := context.Background()

	t.Run("shrinking_below_reserved_fails_and_leaves_record_unchanged", func(t *testing.T) {
		store, _ := newHotelStore(t)
		_, err := store.Create(ctx, "Plaza", "CDMX", 5)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = store.ReserveRoom(ctx, "Plaza")
			require.NoError(t, err)
		}

		_, err = store.Modify(ctx, "Plaza", ledger.HotelUpdate{TotalRooms: intPtr(2)})
		assert.ErrorIs(t, err, ledger.ErrInvalidInput)

		hotel, err := store.Get(ctx, "Plaza")
		require.NoError(t, err)
		assert.Equal(t, 5, hotel.TotalRooms)
		assert.Equal(t, 3, hotel.ReservedRooms)
	})

	t.Run("shrinking_to_exactly_reserved_is_allowed", func(t *testing.T) {
		store, _ := newHotelStore(t)
		_, err := store.Create(ctx, "Plaza", "CDMX", 5)
		require.NoError(t, err)

		_, err = store.ReserveRoom(ctx, "Plaza")
		require.NoError(t, err)

		hotel, err := store.Modify(ctx, "Plaza", ledger.HotelUpdate{TotalRooms: intPtr(1)})
		require.NoError(t, err)
		assert.Equal(t, 0, hotel.AvailableRooms())
	})

	t.Run("rename_rekeys_the_store_entry_preserving_counters", func(t *testing.T) {
		store, _ := newHotelStore(t)
		_, err := store.Create(ctx, "Plaza", "CDMX", 5)
		require.NoError(t, err)

		_, err = store.ReserveRoom(ctx, "Plaza")
		require.NoError(t, err)

		hotel, err := store.Modify(ctx, "Plaza", ledger.HotelUpdate{
			Name:     strPtr("Grand Plaza"),
			Location: strPtr("Ciudad de México"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Grand Plaza", hotel.Name)
		assert.Equal(t, "Ciudad de México", hotel.Location)
		assert.Equal(t, 1, hotel.ReservedRooms)

		_, err = store.Get(ctx, "Plaza")
		assert.ErrorIs(t, err, ledger.ErrNotFound)

		hotel, err = store.Get(ctx, "Grand Plaza")
		require.NoError(t, err)
		assert.Equal(t, 1, hotel.ReservedRooms)
	})

	t.Run("rename_to_taken_name_fails", func(t *testing.T) {
		store, _ := newHotelStore(t)
		_, err := store.Create(ctx, "Plaza", "CDMX", 5)
		require.NoError(t, err)
		_, err = store.Create(ctx, "Ritz", "Paris", 3)
		require.NoError(t, err)

		_, err = store.Modify(ctx, "Plaza", ledger.HotelUpdate{Name: strPtr("Ritz")})
		assert.ErrorIs(t, err, ledger.ErrAlreadyExists)
	})

	t.Run("rename_to_identical_name_is_a_key_noop", func(t *testing.T) {
		store, _ := newHotelStore(t)
		_, err := store.Create(ctx, "Plaza", "CDMX", 5)
		require.NoError(t, err)

		hotel, err := store.Modify(ctx, "Plaza", ledger.HotelUpdate{
			Name:     strPtr("Plaza"),
			Location: strPtr("Monterrey"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Plaza", hotel.Name)
		assert.Equal(t, "Monterrey", hotel.Location)
	})
}

func Test_HotelStore_Delete_IsUnconditional(t *testing.T) {
	ctx := context.Background()
	store, _ := newHotelStore(t)

	_, err := store.Create(ctx, "Plaza", "CDMX", 2)
	require.NoError(t, err)

	_, err = store.ReserveRoom(ctx, "Plaza")
	require.NoError(t, err)

	// no check on the reserved counter
	assert.NoError(t, store.Delete(ctx, "Plaza"))
	assert.ErrorIs(t, store.Delete(ctx, "Plaza"), ledger.ErrNotFound)
}

func Test_HotelStore_LegacyDocumentWithoutReservedRoomsDecodesToZero(t *testing.T) {
	ctx := context.Background()
	store, backend := newHotelStore(t)

	legacy := ledger.Documents{
		"Plaza": json.RawMessage(`{"name": "Plaza", "location": "CDMX", "total_rooms": 4}`),
	}
	require.NoError(t, backend.Save(ctx, legacy))

	hotel, err := store.Get(ctx, "Plaza")
	require.NoError(t, err)
	assert.Equal(t, 0, hotel.ReservedRooms)
	assert.Equal(t, 4, hotel.AvailableRooms())
}
