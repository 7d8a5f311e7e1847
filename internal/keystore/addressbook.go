// Package keystore owns the collection of keypair records and keeps the
// persisted snapshot in step with every mutation.
package keystore

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AlexZinkM/keypair-wallet/internal/apperr"
	"github.com/AlexZinkM/keypair-wallet/internal/codec"
	"github.com/AlexZinkM/keypair-wallet/internal/model"
	"github.com/AlexZinkM/keypair-wallet/internal/store"
)

// SlotKey is the store key holding the JSON array of records
const SlotKey = "keypairs"

// AddressBook is the single owner of all keypair records.
// Mutations are applied per id under a lock, written to the store, and only
// then committed in memory, so a failed write leaves the book unchanged.
type AddressBook struct {
	mu      sync.Mutex
	st      store.Store
	records []model.KeypairRecord
	newID   func() model.RecordID
}

// MergeResult reports the outcome of Merge
type MergeResult struct {
	Merged  int
	Skipped int
}

// Open loads the persisted snapshot. A missing slot is an empty book.
func Open(st store.Store) (*AddressBook, error) {
	b := &AddressBook{st: st, newID: newRecordID}

	raw, err := st.Get(SlotKey)
	if errors.Is(err, store.ErrNotFound) {
		return b, nil
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindStorage, "failed to read keypairs")
	}

	var records []model.KeypairRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, apperr.Wrap(err, apperr.KindStorage, "failed to unmarshal keypairs")
	}

	seen := make(map[model.RecordID]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.ID]; dup {
			return nil, apperr.Newf(apperr.KindStorage, "persisted keypairs contain duplicate id %s", rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}

	b.records = records
	log.Debug().Int("count", len(records)).Msg("Address book loaded")
	return b, nil
}

// newRecordID returns a UUIDv7: unique, and ordered by creation time
func newRecordID() model.RecordID {
	return model.RecordID(uuid.Must(uuid.NewV7()).String())
}

// Create generates a new keypair and appends it with a zero balance.
func (b *AddressBook) Create() (model.KeypairRecord, error) {
	secret := codec.Generate()
	defer clear(secret)

	b.mu.Lock()
	defer b.mu.Unlock()

	rec := model.KeypairRecord{
		ID:         b.freshID(b.records),
		PublicKey:  secret.PublicKey().String(),
		PrivateKey: codec.EncodeSecret(secret),
		Balance:    decimal.Zero,
	}

	next := append(b.snapshot(), rec)
	if err := b.commit(next); err != nil {
		return model.KeypairRecord{}, err
	}

	return rec, nil
}

// Delete removes the record. An unknown id is not an error; the snapshot is still written.
func (b *AddressBook) Delete(id model.RecordID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]model.KeypairRecord, 0, len(b.records))
	for _, rec := range b.records {
		if rec.ID != id {
			next = append(next, rec)
		}
	}
	return b.commit(next)
}

// ToggleVisibility flips showPrivate. An unknown id is not an error; the snapshot is still written.
func (b *AddressBook) ToggleVisibility(id model.RecordID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.snapshot()
	if i := indexOf(next, id); i >= 0 {
		next[i].ShowPrivate = !next[i].ShowPrivate
	}
	return b.commit(next)
}

// SetBalance updates only the balance of one record, against the latest state.
func (b *AddressBook) SetBalance(id model.RecordID, balance decimal.Decimal) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.snapshot()
	i := indexOf(next, id)
	if i < 0 {
		return apperr.NotFound(id.String())
	}
	next[i].Balance = balance
	return b.commit(next)
}

// Merge appends records whose public key is not yet present, in input order.
// Duplicates by public key are skipped; a colliding id gets a fresh one.
func (b *AddressBook) Merge(records []model.KeypairRecord) (MergeResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.snapshot()
	keys := make(map[string]struct{}, len(next)+len(records))
	ids := make(map[model.RecordID]struct{}, len(next)+len(records))
	for _, rec := range next {
		keys[rec.PublicKey] = struct{}{}
		ids[rec.ID] = struct{}{}
	}

	var res MergeResult
	for _, rec := range records {
		if _, dup := keys[rec.PublicKey]; dup {
			res.Skipped++
			continue
		}
		if _, taken := ids[rec.ID]; taken || rec.ID == "" {
			old := rec.ID
			rec.ID = b.freshID(next)
			log.Debug().Str("old_id", old.String()).Str("id", rec.ID.String()).Msg("Imported id collides, reassigned")
		}
		keys[rec.PublicKey] = struct{}{}
		ids[rec.ID] = struct{}{}
		next = append(next, rec)
		res.Merged++
	}

	if err := b.commit(next); err != nil {
		return MergeResult{}, err
	}
	return res, nil
}

// List returns a copy of all records in insertion order.
func (b *AddressBook) List() []model.KeypairRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

// Get returns a copy of one record.
func (b *AddressBook) Get(id model.RecordID) (model.KeypairRecord, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := indexOf(b.records, id); i >= 0 {
		return b.records[i], true
	}
	return model.KeypairRecord{}, false
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

// commit persists next and makes it current. Must hold mu.
func (b *AddressBook) commit(next []model.KeypairRecord) error {
	if next == nil {
		next = []model.KeypairRecord{}
	}

	data, err := json.Marshal(next)
	if err != nil {
		return apperr.Wrap(err, apperr.KindStorage, "failed to marshal keypairs")
	}
	if err := b.st.Set(SlotKey, string(data)); err != nil {
		return apperr.Wrap(err, apperr.KindStorage, "failed to write keypairs")
	}

	b.records = next
	return nil
}

// snapshot copies the current records. Must hold mu.
func (b *AddressBook) snapshot() []model.KeypairRecord {
	out := make([]model.KeypairRecord, len(b.records))
	copy(out, b.records)
	return out
}

// freshID returns an id not used in records. Must hold mu.
func (b *AddressBook) freshID(records []model.KeypairRecord) model.RecordID {
	for {
		id := b.newID()
		if indexOf(records, id) < 0 {
			return id
		}
	}
}

func indexOf(records []model.KeypairRecord, id model.RecordID) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
