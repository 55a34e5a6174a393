package localstore

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Open establishes a SQLite connection at the given path, migrates the
// version schema, and returns a ready Store.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("localstore: database path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&objectVersion{}); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("local store initialized", zap.String("path", path))
	}

	return New(Config{Database: db, Logger: logger})
}

// OpenInMemory opens a throwaway in-memory store, useful for tests and
// experiments.
func OpenInMemory(logger *zap.Logger) (*Store, error) {
	return Open(":memory:", logger)
}
