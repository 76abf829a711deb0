package saved_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/sambat-interest/interest"
	"github.com/warp/sambat-interest/saved"
	"github.com/warp/sambat-interest/store/memory"
	"go.uber.org/zap"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func exampleInput() interest.Input {
	return interest.Input{Principal: "100000", InterestRate: "3", StartDate: "2078-01-01", EndDate: "2080-04-04"}
}

func calculate(t *testing.T, in interest.Input) interest.Result {
	t.Helper()
	result, err := interest.Calculate(in)
	require.NoError(t, err)
	return result
}

// fixedClock returns the same instant on every call.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newRepo(t *testing.T, kv saved.KV) *saved.Repository {
	t.Helper()
	repo := saved.NewRepository(kv, "", zap.NewNop())
	require.NoError(t, repo.Load(context.Background()))
	return repo
}

// failingKV accepts reads and rejects writes.
type failingKV struct {
	*memory.Store
}

func (f *failingKV) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

// brokenKV fails every call.
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}
func (brokenKV) Set(context.Context, string, string) error { return errors.New("connection refused") }

// =============================================================================
// CODEC
// =============================================================================

func TestCodec_RoundTrip(t *testing.T) {
	// GIVEN: A collection with several calculations, including an empty ledger
	// WHEN: Encoded and decoded
	// THEN: Same IDs, order and field values

	sameDay := exampleInput()
	sameDay.EndDate = sameDay.StartDate
	annual := interest.Input{Principal: "5000.75", InterestRate: "14", StartDate: "2079-03-10", EndDate: "2080-01-02"}

	at := time.Date(2024, time.March, 1, 10, 30, 0, 123000000, time.UTC)
	c := saved.Collection{
		{ID: "3", Timestamp: at.Add(2 * time.Second), Name: "third", Input: annual, Result: calculate(t, annual)},
		{ID: "2", Timestamp: at.Add(time.Second), Name: "second", Input: sameDay, Result: calculate(t, sameDay)},
		{ID: "1", Timestamp: at, Name: "first", Input: exampleInput(), Result: calculate(t, exampleInput())},
	}

	encoded, err := saved.Encode(c)
	require.NoError(t, err)

	decoded, err := saved.Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(c))

	for i := range c {
		want, got := c[i], decoded[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.True(t, want.Timestamp.Equal(got.Timestamp))
		assert.Equal(t, want.Input, got.Input)
		assert.Equal(t, want.Result.Duration, got.Result.Duration)
		assert.Equal(t, want.Result.Rates.Basis, got.Result.Rates.Basis)
		assert.True(t, want.Result.Rates.Annual.Equal(got.Result.Rates.Annual))
		assert.True(t, want.Result.Rates.Monthly.Equal(got.Result.Rates.Monthly))
		assert.True(t, want.Result.FinalAmount.Equal(got.Result.FinalAmount))
		assert.True(t, want.Result.TotalInterest.Equal(got.Result.TotalInterest))
		assert.True(t, want.Result.Principal.Equal(got.Result.Principal))
		require.Len(t, got.Result.Entries, len(want.Result.Entries))
		for j := range want.Result.Entries {
			we, ge := want.Result.Entries[j], got.Result.Entries[j]
			assert.Equal(t, we.Kind, ge.Kind)
			assert.Equal(t, we.Period, ge.Period)
			assert.Equal(t, we.Derivation, ge.Derivation)
			assert.True(t, we.StartingPrincipal.Equal(ge.StartingPrincipal))
			assert.True(t, we.Interest.Equal(ge.Interest), "entry interest keeps full precision")
			assert.True(t, we.EndingAmount.Equal(ge.EndingAmount))
		}
	}

	reencoded, err := saved.Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded)
}

func TestCodec_EmptyCollection(t *testing.T) {
	encoded, err := saved.Encode(saved.Collection{})
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)

	decoded, err := saved.Decode(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestCodec_Malformed(t *testing.T) {
	for _, value := range []string{
		"not json",
		`{"id":"1"}`,
		`[{"name":"no id"}]`,
		`[{"id":"1"},{"id":"1"}]`,
		`[{"id":"1","result":{"final_amount":"abc"}}]`,
	} {
		_, err := saved.Decode(value)
		assert.ErrorIs(t, err, saved.ErrMalformed, value)
	}
}

// =============================================================================
// REPOSITORY
// =============================================================================

func TestRepository_LoadAbsentKey_Empty(t *testing.T) {
	repo := newRepo(t, memory.New())
	assert.Empty(t, repo.List())
}

func TestRepository_LoadMalformed_DiscardedSilently(t *testing.T) {
	// GIVEN: Garbage under the storage key
	// THEN: Load succeeds with no saved calculations

	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, saved.DefaultKey, "{garbage"))

	repo := saved.NewRepository(kv, saved.DefaultKey, zap.NewNop())
	require.NoError(t, repo.Load(ctx))
	assert.Empty(t, repo.List())

	// The next save replaces the garbage.
	_, err := repo.Add(ctx, "fresh", exampleInput(), calculate(t, exampleInput()))
	require.NoError(t, err)
	value, _, _ := kv.Get(ctx, saved.DefaultKey)
	decoded, err := saved.Decode(value)
	require.NoError(t, err)
	assert.Len(t, decoded, 1)
}

func TestRepository_LoadBackendFailure(t *testing.T) {
	repo := saved.NewRepository(brokenKV{}, "", zap.NewNop())
	assert.Error(t, repo.Load(context.Background()))
}

func TestRepository_AddPrependsAndRewritesWholeCollection(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	repo := newRepo(t, kv)

	base := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	repo.Now = fixedClock(base)
	first, err := repo.Add(ctx, "first", exampleInput(), calculate(t, exampleInput()))
	require.NoError(t, err)

	repo.Now = fixedClock(base.Add(time.Minute))
	second, err := repo.Add(ctx, "second", exampleInput(), calculate(t, exampleInput()))
	require.NoError(t, err)

	assert.Equal(t, "1714910400000", first.ID)
	assert.Equal(t, "1714910460000", second.ID)

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	// Every write carries the full collection.
	assert.Equal(t, 2, kv.Writes())
	value, ok, err := kv.Get(ctx, saved.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	stored, err := saved.Decode(value)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, second.ID, stored[0].ID)
}

func TestRepository_SameMillisecond_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, memory.New())
	repo.Now = fixedClock(time.UnixMilli(1000))

	a, err := repo.Add(ctx, "a", exampleInput(), calculate(t, exampleInput()))
	require.NoError(t, err)
	b, err := repo.Add(ctx, "b", exampleInput(), calculate(t, exampleInput()))
	require.NoError(t, err)

	assert.Equal(t, "1000", a.ID)
	assert.Equal(t, "1001", b.ID)
}

func TestRepository_BlankNameDefaultsFromDates(t *testing.T) {
	repo := newRepo(t, memory.New())

	calc, err := repo.Add(context.Background(), "   ", exampleInput(), calculate(t, exampleInput()))
	require.NoError(t, err)
	assert.Equal(t, "Calculation 2078-01-01 → 2080-04-04", calc.Name)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	repo := newRepo(t, kv)

	var ids []string
	for i := 0; i < 3; i++ {
		repo.Now = fixedClock(time.UnixMilli(int64(1000 * (i + 1))))
		calc, err := repo.Add(ctx, "", exampleInput(), calculate(t, exampleInput()))
		require.NoError(t, err)
		ids = append(ids, calc.ID)
	}

	require.NoError(t, repo.Delete(ctx, ids[1]))

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[0], list[1].ID)

	_, err := repo.Get(ids[1])
	assert.True(t, saved.IsNotFound(err))

	err = repo.Delete(ctx, "nope")
	assert.ErrorIs(t, err, saved.ErrNotFound)
	assert.Equal(t, 4, kv.Writes(), "three adds and one delete")

	// A reload sees the same state.
	reloaded := newRepo(t, kv)
	assert.Len(t, reloaded.List(), 2)
}

func TestRepository_FailedWrite_LeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Store: memory.New()}
	repo := newRepo(t, kv)

	_, err := repo.Add(ctx, "x", exampleInput(), calculate(t, exampleInput()))
	require.Error(t, err)
	assert.Empty(t, repo.List())
}

func TestRepository_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, memory.New())
	_, err := repo.Add(ctx, "original", exampleInput(), calculate(t, exampleInput()))
	require.NoError(t, err)

	list := repo.List()
	list[0].Name = "mutated"

	assert.Equal(t, "original", repo.List()[0].Name)
}
