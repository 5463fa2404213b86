package migrations

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Migration is a bookkeeping row, one per applied migration. Rows are grouped
// into batches so a rollback undoes one deployment's worth at a time.
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

// MigrationDefinition pairs a forward migration with its inverse. Down may be
// nil for migrations that cannot be undone.
type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db   *gorm.DB
	defs []MigrationDefinition
}

// NewMigrator prepares the bookkeeping table and registers the definitions in
// the order they should run.
func NewMigrator(db *gorm.DB, defs ...MigrationDefinition) (*Migrator, error) {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("failed to prepare migrations table: %w", err)
	}
	return &Migrator{db: db, defs: defs}, nil
}

// Migrate applies every definition without a bookkeeping row yet, each in its
// own transaction, all under a single new batch number.
func (m *Migrator) Migrate() error {
	applied, err := m.appliedNames()
	if err != nil {
		return err
	}
	batch, err := m.latestBatch()
	if err != nil {
		return err
	}
	batch++

	ran := 0
	for _, def := range m.defs {
		if applied[def.Name] {
			continue
		}

		fmt.Printf("Migrating: %s\n", def.Name)

		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := def.Up(tx); err != nil {
				return err
			}
			return tx.Create(&Migration{Name: def.Name, Batch: batch}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", def.Name, err)
		}
		ran++
	}

	if ran == 0 {
		fmt.Println("Nothing to migrate")
	} else {
		fmt.Printf("Applied %d migration(s)\n", ran)
	}
	return nil
}

// Rollback undoes the last steps batches, newest rows first within a batch.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}

	for ; steps > 0; steps-- {
		batch, err := m.latestBatch()
		if err != nil {
			return err
		}
		if batch == 0 {
			fmt.Println("Nothing to roll back")
			return nil
		}

		var records []Migration
		if err := m.db.Where("batch = ?", batch).Order("id DESC").Find(&records).Error; err != nil {
			return err
		}

		for _, record := range records {
			def := m.definition(record.Name)
			if def == nil {
				return fmt.Errorf("migration definition not found: %s", record.Name)
			}
			if def.Down == nil {
				return fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			fmt.Printf("Rolling back: %s\n", record.Name)

			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := def.Down(tx); err != nil {
					return err
				}
				return tx.Delete(&record).Error
			})
			if err != nil {
				return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
			}
		}
	}
	return nil
}

// Status lists the applied migrations, oldest batch first.
func (m *Migrator) Status() ([]Migration, error) {
	var applied []Migration
	if err := m.db.Order("batch ASC, id ASC").Find(&applied).Error; err != nil {
		return nil, err
	}
	return applied, nil
}

func (m *Migrator) appliedNames() (map[string]bool, error) {
	var names []string
	if err := m.db.Model(&Migration{}).Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

func (m *Migrator) latestBatch() (int, error) {
	var latest Migration
	err := m.db.Order("batch DESC").First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Batch, nil
}

func (m *Migrator) definition(name string) *MigrationDefinition {
	for i := range m.defs {
		if m.defs[i].Name == name {
			return &m.defs[i]
		}
	}
	return nil
}
