package memoryengine_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/reservation-ledger-go/ledger"
	"github.com/hotelops/reservation-ledger-go/ledger/memoryengine"
)

func Test_Store_LoadReturnsACopy(t *testing.T) {
	ctx := context.Background()
	store := memoryengine.NewStore()

	require.NoError(t, store.Save(ctx, ledger.Documents{
		"C001": json.RawMessage(`{"name":"Ada"}`),
	}))

	loaded, recovered, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, recovered)

	// mutating the loaded mapping must not leak into the store
	loaded["C001"] = json.RawMessage(`{"name":"Eve"}`)
	loaded["C002"] = json.RawMessage(`{}`)

	reloaded, _, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.JSONEq(t, `{"name":"Ada"}`, string(reloaded["C001"]))
}

func Test_Store_SaveCopiesItsInput(t *testing.T) {
	ctx := context.Background()
	store := memoryengine.NewStore()

	docs := ledger.Documents{"C001": json.RawMessage(`{"name":"Ada"}`)}
	require.NoError(t, store.Save(ctx, docs))

	docs["C001"] = json.RawMessage(`{"name":"Eve"}`)

	loaded, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada"}`, string(loaded["C001"]))
}

func Test_Store_FailureInjection(t *testing.T) {
	ctx := context.Background()
	store := memoryengine.NewStore()
	boom := errors.New("boom")

	store.FailSave(boom)
	assert.ErrorIs(t, store.Save(ctx, ledger.Documents{"k": json.RawMessage(`{}`)}), boom)

	store.FailSave(nil)
	require.NoError(t, store.Save(ctx, ledger.Documents{"k": json.RawMessage(`{}`)}))

	store.FailLoad(boom)
	_, _, err := store.Load(ctx)
	assert.ErrorIs(t, err, boom)

	store.FailLoad(nil)
	loaded, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
