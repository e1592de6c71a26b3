package db

import (
	"fmt"
	"log"
)

// LoadIfEmpty inserts rows into the named table only when it currently has
// zero rows. That makes the load step idempotent across repeated pipeline
// runs at the cost of a manual reset (drop the db file) to pick up refreshed
// source data.
func LoadIfEmpty[T any](db *DB, table string, rows []T) error {
	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		return fmt.Errorf("error counting rows in '%s': %w", table, err)
	}
	if count > 0 {
		log.Printf("skipped %s (already has %d rows)", table, count)
		return nil
	}
	if len(rows) == 0 {
		log.Printf("nothing to load into %s", table)
		return nil
	}

	if err := db.Table(table).CreateInBatches(rows, 500).Error; err != nil {
		return fmt.Errorf("error inserting %d rows into '%s': %w", len(rows), table, err)
	}
	log.Printf("inserted %d rows into %s", len(rows), table)
	return nil
}
