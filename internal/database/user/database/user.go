package database

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/junglebet-games/viptransfer/internal/byteutil"
	"github.com/junglebet-games/viptransfer/internal/cache"
	"github.com/junglebet-games/viptransfer/internal/database"
	"github.com/junglebet-games/viptransfer/internal/database/user/model"
	bolt "go.etcd.io/bbolt"
)

const bucket = "users"

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) FetchByUsername(username string) (model.User, error) {
	var user model.User
	username = strings.TrimPrefix(username, "@")
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return database.ErrNotFound
		}

		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var u model.User
			if err := json.Unmarshal(v, &u); err != nil {
				return fmt.Errorf("json unmarshal: %w", err)
			}

			if strings.EqualFold(u.Username, username) {
				user = u
				return nil
			}
		}

		return database.ErrNotFound
	}); err != nil {
		return user, fmt.Errorf("view transaction: %w", err)
	}

	return user, nil
}

func (db *DB) Fetch(userID int64) (model.User, error) {
	var u model.User
	if db.cache != nil {
		if v, ok := db.cache.Get(userID); ok {
			return v.(model.User), nil
		}
	}

	pk := byteutil.EncodeInt64ToBytes(userID)
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return database.ErrNotFound
		}

		bytes := b.Get(pk)
		if len(bytes) == 0 {
			return database.ErrNotFound
		}

		if err := json.Unmarshal(bytes, &u); err != nil {
			return fmt.Errorf("json unmarshal: %w", err)
		}

		return nil
	}); err != nil {
		return u, fmt.Errorf("view transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(userID, u)
	}

	return u, nil
}

func (db *DB) Store(m model.User) error {
	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	pk := byteutil.EncodeInt64ToBytes(m.ID)
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		if err := b.Put(pk, bytes); err != nil {
			return fmt.Errorf("put to bucket: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(m.ID, m)
	}

	return nil
}
