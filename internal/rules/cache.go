package rules

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Cache is a SQLite-backed pull-through cache for validated rule sets,
// keyed by rule-file path and modification time. Repeated runs against
// an unchanged rule file skip re-reading and re-validating it.
//
// Design decision: the cache lives beside the loader, not inside the
// analysis core. It is explicitly constructed by the caller and passed
// to LoadWithCache; every analysis function stays pure and cache-free.
type Cache struct {
	// db is the underlying SQL database connection.
	db *sql.DB
}

// cachedRule is the serialized form of one rule. The compiled matcher
// is rebuilt on retrieval.
type cachedRule struct {
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Flags       string `json:"flags,omitempty"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// OpenCache opens or creates the rule cache database inside dir.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "rules.db")
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open rule cache: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	c := &Cache{db: db}
	if err := c.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache tables: %w", err)
	}
	return c, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// createTables creates the cache schema if it doesn't exist.
func (c *Cache) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rule_sets (
		source TEXT PRIMARY KEY,
		mod_time INTEGER NOT NULL,
		skipped INTEGER NOT NULL DEFAULT 0,
		rules_json TEXT NOT NULL,
		cached_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := c.db.ExecContext(context.Background(), schema)
	return err
}

// Get returns the cached rule set for source at the given modification
// time, or nil on a miss. A stale entry (different mod time) is a miss.
func (c *Cache) Get(ctx context.Context, source string, modTime time.Time) (*LoadResult, error) {
	query := `SELECT mod_time, skipped, rules_json FROM rule_sets WHERE source = ?`

	var storedMod int64
	var skipped int
	var rulesJSON string
	err := c.db.QueryRowContext(ctx, query, source).Scan(&storedMod, &skipped, &rulesJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rule cache: %w", err)
	}
	if storedMod != modTime.UnixNano() {
		return nil, nil
	}

	var cached []cachedRule
	if err := json.Unmarshal([]byte(rulesJSON), &cached); err != nil {
		return nil, fmt.Errorf("failed to parse cached rules: %w", err)
	}

	result := &LoadResult{Rules: make([]Rule, 0, len(cached)), Skipped: skipped}
	for _, cr := range cached {
		r := Rule{
			Name:        cr.Name,
			Pattern:     cr.Pattern,
			Flags:       cr.Flags,
			Description: cr.Description,
			Suggestion:  cr.Suggestion,
		}
		// Cached rules already passed validation once; a compile failure
		// here means the cache entry is corrupt, so treat it as a miss.
		if err := r.Compile(); err != nil {
			return nil, nil
		}
		result.Rules = append(result.Rules, r)
	}
	return result, nil
}

// Put stores a validated rule set for source at the given modification
// time, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, source string, modTime time.Time, result *LoadResult) error {
	cached := make([]cachedRule, 0, len(result.Rules))
	for _, r := range result.Rules {
		cached = append(cached, cachedRule{
			Name:        r.Name,
			Pattern:     r.Pattern,
			Flags:       r.Flags,
			Description: r.Description,
			Suggestion:  r.Suggestion,
		})
	}

	rulesJSON, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to serialize rules: %w", err)
	}

	query := `
	INSERT INTO rule_sets (source, mod_time, skipped, rules_json)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(source) DO UPDATE SET
		mod_time = excluded.mod_time,
		skipped = excluded.skipped,
		rules_json = excluded.rules_json,
		cached_at = CURRENT_TIMESTAMP
	`
	if _, err := c.db.ExecContext(ctx, query, source, modTime.UnixNano(), result.Skipped, string(rulesJSON)); err != nil {
		return fmt.Errorf("failed to store rule set: %w", err)
	}
	return nil
}

// LoadWithCache loads a rule file through the cache. A nil cache or an
// empty path falls back to a plain Load. Cache failures degrade to a
// direct load; they never fail the analysis.
func LoadWithCache(ctx context.Context, path string, cache *Cache, logger *slog.Logger) (*LoadResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil || path == "" {
		return Load(path, logger)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRuleFileNotFound
		}
		return nil, err
	}

	if cached, err := cache.Get(ctx, path, info.ModTime()); err != nil {
		logger.Warn("rule cache read failed", "path", path, "error", err)
	} else if cached != nil {
		logger.Debug("rule cache hit", "path", path, "rules", len(cached.Rules))
		return cached, nil
	}

	result, err := LoadFile(path, logger)
	if err != nil {
		return nil, err
	}
	if err := cache.Put(ctx, path, info.ModTime(), result); err != nil {
		logger.Warn("rule cache write failed", "path", path, "error", err)
	}
	return result, nil
}
