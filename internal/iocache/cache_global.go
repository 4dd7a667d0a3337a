package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/schema"
)

// rawTable is the name of the table for raw repository facts.
const rawTable = "raw_repo_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for cache storage.
func GetDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// InitStores initializes the global manager with the raw repository store.
// An empty backend leaves the manager without a store, so fetches go straight
// to the hosting service.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		if backend == "" {
			return
		}
		store, err := NewCacheStore(rawTable, backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize repository caching: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.raw = store
	})

	return initErr
}

// EnableMemoryLayer puts a bounded in-memory LRU in front of the global store.
// It is meant for long-running processes that see the same repositories repeatedly.
func EnableMemoryLayer(size int) error {
	Manager.Lock()
	defer Manager.Unlock()
	if _, ok := Manager.raw.(*LRUStore); ok {
		return nil
	}
	layered, err := NewLRUStore(Manager.raw, size)
	if err != nil {
		return err
	}
	Manager.raw = layered
	return nil
}

// CloseCaching should be called on application shutdown.
func CloseCaching() { // called by main before exit
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.raw != nil {
			_ = Manager.raw.Close()
		}
	})
}

// ClearCache clears the cache for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL and PostgreSQL, it drops the table along with the migration bookkeeping.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTables(mysqlDriver, connStr, rawTable, migrationsTable)

	case schema.PostgreSQLBackend:
		return clearSQLTables(postgresDriver, connStr, rawTable, migrationsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// clearSQLTables connects to the SQL database and drops each table if it exists.
func clearSQLTables(driverName, connStr string, tables ...string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
