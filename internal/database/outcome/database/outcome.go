package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/junglebet-games/viptransfer/internal/byteutil"
	"github.com/junglebet-games/viptransfer/internal/cache"
	"github.com/junglebet-games/viptransfer/internal/database"
	"github.com/junglebet-games/viptransfer/internal/database/outcome/model"
	bolt "go.etcd.io/bbolt"
)

const prefix = "outcome"

var pLen = len(prefix)

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	// gen counts committed writes; a read overlapping a write is not cached
	mtx   sync.Mutex
	gen   uint64
	cache cache.Cache
}

func (db *DB) BytesBucket(userID int64) []byte {
	b := make([]byte, pLen+8)
	copy(b, prefix)
	copy(b[pLen:], byteutil.EncodeInt64ToBytes(userID))
	return b
}

func (db *DB) SerialBucket(userID int64) string {
	return fmt.Sprintf("%s%d", prefix, userID)
}

// FetchSummary aggregates the user's outcomes. A user without any outcome
// gets an empty summary.
func (db *DB) FetchSummary(userID int64) (model.Summary, error) {
	summary := model.Summary{ByStatus: map[model.Status]int{}}
	list, err := db.FetchByUserID(userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return summary, nil
		}
		return summary, fmt.Errorf("fetch by userID: %w", err)
	}

	for _, o := range list {
		summary.Count++
		summary.ByStatus[o.Status]++
		if o.CreatedAt.After(summary.Last.CreatedAt) {
			summary.Last = o
		}
	}

	return summary, nil
}

func (db *DB) FetchByUserID(userID int64) ([]model.Outcome, error) {
	if db.cache != nil {
		if v, ok := db.cache.Get(db.SerialBucket(userID)); ok {
			return v.([]model.Outcome), nil
		}
	}

	gen := db.generation()
	list, err := db.read(userID)
	if err != nil {
		return nil, err
	}

	db.store(userID, gen, list)
	return list, nil
}

func (db *DB) generation() uint64 {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	return db.gen
}

// store caches list read at generation gen unless a write committed since.
func (db *DB) store(userID int64, gen uint64, list []model.Outcome) {
	if db.cache == nil {
		return
	}

	db.mtx.Lock()
	defer db.mtx.Unlock()
	if db.gen == gen {
		db.cache.Add(db.SerialBucket(userID), list)
	}
}

func (db *DB) read(userID int64) ([]model.Outcome, error) {
	var list []model.Outcome
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(db.BytesBucket(userID))
		if b == nil {
			return database.ErrNotFound
		}

		if err := b.ForEach(func(k, v []byte) error {
			var o model.Outcome
			if err := json.Unmarshal(v, &o); err != nil {
				return fmt.Errorf("json unmarshal: %w", err)
			}

			if err := o.ID.UnmarshalBinary(k); err != nil {
				return fmt.Errorf("uuid unmarshal: %w", err)
			}

			list = append(list, o)
			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction: %w", err)
	}

	return list, nil
}

func (db *DB) Add(m model.Outcome) error {
	tx, err := db.sDB.DB.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer tx.Rollback() //nolint

	b, err := tx.CreateBucketIfNotExists(db.BytesBucket(m.UserID))
	if err != nil {
		return fmt.Errorf("create bucket %d: %w", m.UserID, err)
	}

	binaryID, err := m.ID.MarshalBinary()
	if err != nil {
		return fmt.Errorf("uuid binary: %w", err)
	}

	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	if err := b.Put(binaryID, bytes); err != nil {
		return fmt.Errorf("put to bucket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	db.mtx.Lock()
	db.gen++
	if db.cache != nil {
		db.cache.Delete(db.SerialBucket(m.UserID))
	}
	db.mtx.Unlock()

	return nil
}
