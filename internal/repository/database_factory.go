package repository

import (
	"fmt"
	"strings"
)

// DatabaseType selects the storage backend.
type DatabaseType string

const (
	DatabaseTypeBadger DatabaseType = "badger"
	DatabaseTypeBolt   DatabaseType = "bolt"
)

// ParseDatabaseType validates a backend name from configuration.
func ParseDatabaseType(s string) (DatabaseType, error) {
	switch DatabaseType(strings.ToLower(strings.TrimSpace(s))) {
	case DatabaseTypeBadger:
		return DatabaseTypeBadger, nil
	case DatabaseTypeBolt:
		return DatabaseTypeBolt, nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", s)
	}
}

// NewPlannerRepository creates a repository backed by the requested
// database type.
//
// Database Types:
// - badger: LSM-tree storage in a directory; fast writes, larger files
// - bolt: single-file B+ tree; compact, good for small datasets
func NewPlannerRepository(dbPath string, dbType DatabaseType) (PlannerRepository, error) {
	switch dbType {
	case DatabaseTypeBolt:
		// Use .bolt extension for BoltDB files
		if !strings.HasSuffix(dbPath, ".bolt") {
			dbPath = dbPath + ".bolt"
		}
		return NewBoltPlannerRepository(dbPath)

	case DatabaseTypeBadger:
		// BadgerDB uses directory-based storage
		return NewBadgerPlannerRepository(dbPath)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}
