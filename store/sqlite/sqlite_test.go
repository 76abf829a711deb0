package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/sambat-interest/interest"
	"github.com/warp/sambat-interest/saved"
	"github.com/warp/sambat-interest/store/sqlite"
	"go.uber.org/zap"
)

var _ saved.KV = (*sqlite.Store)(nil)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// KEY-VALUE TESTS
// =============================================================================

func TestStore_GetAbsent(t *testing.T) {
	store := newTestStore(t)

	v, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestStore_SetOverwrites(t *testing.T) {
	// GIVEN: A key written twice
	// THEN: The second value wins

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "first"))
	require.NoError(t, store.Set(ctx, "k", "second"))

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestStore_SurvivesReopen(t *testing.T) {
	// GIVEN: A saved calculation written through the repository to a file database
	// WHEN: The database is closed and reopened
	// THEN: A fresh repository loads the same collection

	path := filepath.Join(t.TempDir(), "bsinterest.db")
	ctx := context.Background()

	in := interest.Input{Principal: "100000", InterestRate: "3", StartDate: "2078-01-01", EndDate: "2080-04-04"}
	result, err := interest.Calculate(in)
	require.NoError(t, err)

	store, err := sqlite.New(path)
	require.NoError(t, err)
	repo := saved.NewRepository(store, "", zap.NewNop())
	require.NoError(t, repo.Load(ctx))
	calc, err := repo.Add(ctx, "loan to Hari", in, result)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	repo2 := saved.NewRepository(reopened, "", zap.NewNop())
	require.NoError(t, repo2.Load(ctx))

	got, err := repo2.Get(calc.ID)
	require.NoError(t, err)
	assert.Equal(t, "loan to Hari", got.Name)
	assert.True(t, got.Result.FinalAmount.Equal(result.FinalAmount))
	assert.Len(t, got.Result.Entries, 3)
}
