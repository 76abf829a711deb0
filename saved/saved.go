/*
Package saved keeps named calculation results in a key-value store.

PURPOSE:
  A user can save a calculation under a name, list saved calculations,
  open one again and delete it. The whole collection lives under ONE key
  in an injected key-value store.

PERSISTENCE CONTRACT:
  - Read once: Repository.Load reads the key at startup
  - Rewrite in full: every Add/Delete encodes the whole collection and
    Sets it under the key. There is no incremental write.
  - Malformed stored data means "no saved calculations". It is logged
    and discarded, never returned as an error.

ORDERING:
  Newest first. Add prepends; Delete keeps the relative order of the rest.

IDENTIFIERS:
  The creation time in Unix milliseconds, as a decimal string. Two saves
  in the same millisecond get consecutive IDs.

SEE ALSO:
  - kv.go: The key-value interface
  - codec.go: Wire format of the stored value
  - repository.go: Load/Add/Delete/Get/List
  - store/memory, store/sqlite, store/redis: KV backends
*/
package saved

import (
	"errors"
	"time"

	"github.com/warp/sambat-interest/interest"
)

// DefaultKey is the storage key holding the encoded collection.
const DefaultKey = "bs-interest-calculations"

var (
	// ErrNotFound is returned when no saved calculation has the given ID.
	ErrNotFound = errors.New("saved calculation not found")

	// ErrMalformed is returned by Decode for unreadable stored data.
	ErrMalformed = errors.New("malformed saved calculations")
)

// =============================================================================
// SAVED CALCULATION - Named snapshot of inputs and result
// =============================================================================

type SavedCalculation struct {
	ID        string
	Timestamp time.Time
	Name      string
	Input     interest.Input
	Result    interest.Result
}

// Collection is ordered newest first.
type Collection []SavedCalculation

// Index returns the position of id, or -1.
func (c Collection) Index(id string) int {
	for i, s := range c {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (c Collection) clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
