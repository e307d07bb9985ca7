// Package database caches calculated attributes in SQLite, keyed by chart content and settings.
package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/api"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"
)

const schema = `
create table if not exists ratings
  (
	  key        text    not null primary key,
	  version    integer not null,
	  stars      real    not null,
	  attributes blob    not null,
	  created_at integer not null
  );
`

type Cache struct {
	db *sql.DB
}

func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", path, err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: create schema: %w", err)
	}

	slog.Debug("database: cache opened", "path", path)

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Key identifies a rating by the raw chart bytes, the difficulty-relevant mods, the clock rate,
// the tuning values and the calculator version
func Key(chart []byte, diff *difficulty.Difficulty, cfg tuning.Config, version int) (string, error) {
	tuned, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("database: encode tuning: %w", err)
	}

	h := sha256.New()
	h.Write(chart)
	h.Write([]byte{0})
	h.Write([]byte(difficulty.GetDiffMaskedMods(diff.Mods).String()))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(diff.Speed, 'g', -1, 64)))
	h.Write([]byte{0})
	h.Write(tuned)
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(version)))

	return hex.EncodeToString(h.Sum(nil)), nil
}

// shortKey trims key for logging
func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}

	return key
}

// Get returns the cached attributes for key, ok is false on a miss
func (c *Cache) Get(ctx context.Context, key string) (attr api.Attributes, ok bool, err error) {
	var data []byte

	err = c.db.QueryRowContext(ctx, "select attributes from ratings where key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Debug("database: cache miss", "key", shortKey(key))
		return attr, false, nil
	}

	if err != nil {
		return attr, false, fmt.Errorf("database: query rating: %w", err)
	}

	if err = yaml.Unmarshal(data, &attr); err != nil {
		return attr, false, fmt.Errorf("database: decode rating: %w", err)
	}

	slog.Debug("database: cache hit", "key", shortKey(key), "stars", attr.StarRating)

	return attr, true, nil
}

func (c *Cache) Put(ctx context.Context, key string, version int, attr api.Attributes) error {
	data, err := yaml.Marshal(attr)
	if err != nil {
		return fmt.Errorf("database: encode rating: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		"insert or replace into ratings(key, version, stars, attributes, created_at) values(?, ?, ?, ?, ?)",
		key, version, attr.StarRating, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("database: save rating: %w", err)
	}

	return nil
}

// Prune removes ratings calculated by any calculator version other than version
func (c *Cache) Prune(ctx context.Context, version int) (int64, error) {
	res, err := c.db.ExecContext(ctx, "delete from ratings where version != ?", version)
	if err != nil {
		return 0, fmt.Errorf("database: prune ratings: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("database: prune ratings: %w", err)
	}

	if n > 0 {
		slog.Info("database: pruned stale ratings", "count", n, "version", version)
	}

	return n, nil
}
