package saved

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/warp/sambat-interest/interest"
	"go.uber.org/zap"
)

// =============================================================================
// REPOSITORY - In-memory collection mirrored to one KV key
// =============================================================================

// Repository holds the collection in memory and rewrites it in full on
// every mutation. A failed write leaves the in-memory collection as it was.
type Repository struct {
	KV  KV
	Key string

	// Now is the clock used for IDs and timestamps.
	Now func() time.Time

	logger *zap.Logger

	mu    sync.RWMutex
	items Collection
}

// NewRepository creates an empty repository. Call Load once before use.
func NewRepository(kv KV, key string, logger *zap.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		KV:     kv,
		Key:    key,
		Now:    time.Now,
		logger: logger,
		items:  Collection{},
	}
}

// Load reads the stored collection. An absent key or malformed data both
// leave the repository empty; only backend failures are returned.
func (r *Repository) Load(ctx context.Context) error {
	value, ok, err := r.KV.Get(ctx, r.Key)
	if err != nil {
		return fmt.Errorf("failed to read saved calculations: %w", err)
	}

	items := Collection{}
	if ok {
		decoded, err := Decode(value)
		if err != nil {
			r.logger.Warn("discarding unreadable saved calculations",
				zap.String("op", "saved.Load"),
				zap.String("key", r.Key),
				zap.Error(err),
			)
		} else {
			items = decoded
		}
	}

	r.mu.Lock()
	r.items = items
	r.mu.Unlock()

	r.logger.Debug("loaded saved calculations",
		zap.String("op", "saved.Load"),
		zap.Int("count", len(items)),
	)
	return nil
}

// Add saves a calculation under name and returns the stored record.
// A blank name is replaced by one built from the input dates.
func (r *Repository) Add(ctx context.Context, name string, in interest.Input, result interest.Result) (SavedCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.Now().UTC()
	calc := SavedCalculation{
		ID:        r.nextIDLocked(now),
		Timestamp: now,
		Name:      defaultName(name, in),
		Input:     in,
		Result:    result,
	}

	next := make(Collection, 0, len(r.items)+1)
	next = append(next, calc)
	next = append(next, r.items...)

	if err := r.writeLocked(ctx, next); err != nil {
		return SavedCalculation{}, err
	}
	r.items = next

	r.logger.Info("saved calculation",
		zap.String("op", "saved.Add"),
		zap.String("id", calc.ID),
		zap.String("name", calc.Name),
	)
	return calc, nil
}

// Delete removes a saved calculation. Returns ErrNotFound for unknown IDs.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.items.Index(id)
	if i < 0 {
		return ErrNotFound
	}

	next := make(Collection, 0, len(r.items)-1)
	next = append(next, r.items[:i]...)
	next = append(next, r.items[i+1:]...)

	if err := r.writeLocked(ctx, next); err != nil {
		return err
	}
	r.items = next

	r.logger.Info("deleted calculation",
		zap.String("op", "saved.Delete"),
		zap.String("id", id),
	)
	return nil
}

// Get returns one saved calculation.
func (r *Repository) Get(id string) (SavedCalculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.items.Index(id)
	if i < 0 {
		return SavedCalculation{}, ErrNotFound
	}
	return r.items[i], nil
}

// List returns a copy of the collection, newest first.
func (r *Repository) List() Collection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items.clone()
}

func (r *Repository) writeLocked(ctx context.Context, c Collection) error {
	value, err := Encode(c)
	if err != nil {
		return err
	}
	if err := r.KV.Set(ctx, r.Key, value); err != nil {
		return fmt.Errorf("failed to write saved calculations: %w", err)
	}
	return nil
}

// nextIDLocked derives an ID from now, stepping forward past collisions.
func (r *Repository) nextIDLocked(now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if r.items.Index(id) < 0 {
			return id
		}
		ms++
	}
}

func defaultName(name string, in interest.Input) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fmt.Sprintf("Calculation %s → %s", in.StartDate, in.EndDate)
}

// IsNotFound reports whether err means the saved calculation does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
