package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_03_000000_create_player_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						handle VARCHAR(64) PRIMARY KEY,
						user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
						display_name VARCHAR(255) NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS player_ratings (
						id BIGSERIAL PRIMARY KEY,
						player_handle VARCHAR(64) NOT NULL REFERENCES players(handle) ON DELETE CASCADE,
						sport VARCHAR(32) NOT NULL,
						rating INTEGER NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_player_sport ON player_ratings(player_handle, sport);
					CREATE INDEX IF NOT EXISTS idx_player_ratings_sport_rating ON player_ratings(sport, rating DESC);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS player_ratings CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS players CASCADE").Error
			},
		},
		{
			Name: "2025_01_04_000000_create_match_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS pending_matches (
						id VARCHAR(36) PRIMARY KEY,
						sport VARCHAR(32) NOT NULL,
						reporter_handle VARCHAR(64) NOT NULL,
						reporter_score INTEGER NOT NULL,
						opponent_handle VARCHAR(64) NOT NULL,
						opponent_score INTEGER NOT NULL,
						confirmed BOOLEAN NOT NULL DEFAULT false,
						created_at TIMESTAMP DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_pending_matches_reporter ON pending_matches(reporter_handle);
					CREATE INDEX IF NOT EXISTS idx_pending_matches_opponent ON pending_matches(opponent_handle);
					CREATE INDEX IF NOT EXISTS idx_pending_matches_created_at ON pending_matches(created_at);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS completed_matches (
						id VARCHAR(36) PRIMARY KEY,
						sport VARCHAR(32) NOT NULL,
						reporter_handle VARCHAR(64) NOT NULL,
						reporter_score INTEGER NOT NULL,
						opponent_handle VARCHAR(64) NOT NULL,
						opponent_score INTEGER NOT NULL,
						confirmed BOOLEAN NOT NULL DEFAULT true,
						created_at TIMESTAMP DEFAULT NOW(),
						confirmed_at TIMESTAMP NOT NULL
					);
					CREATE INDEX IF NOT EXISTS idx_completed_matches_reporter ON completed_matches(reporter_handle);
					CREATE INDEX IF NOT EXISTS idx_completed_matches_opponent ON completed_matches(opponent_handle);
					CREATE INDEX IF NOT EXISTS idx_completed_matches_confirmed_at ON completed_matches(confirmed_at DESC);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS completed_matches CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS pending_matches CASCADE").Error
			},
		},
		{
			Name: "2025_01_05_000000_create_challenges_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS challenges (
						id VARCHAR(36) PRIMARY KEY,
						challenger_handle VARCHAR(64) NOT NULL,
						opponent_handle VARCHAR(64) NOT NULL,
						sport VARCHAR(32) NOT NULL,
						status VARCHAR(16) NOT NULL DEFAULT 'pending',
						scheduled_date TIMESTAMP NULL,
						scheduled_time VARCHAR(16) NULL,
						place VARCHAR(255) NULL,
						dare VARCHAR(500) NULL,
						message VARCHAR(500),
						created_at TIMESTAMP DEFAULT NOW(),
						accepted_at TIMESTAMP NULL,
						declined_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_challenges_challenger ON challenges(challenger_handle);
					CREATE INDEX IF NOT EXISTS idx_challenges_opponent ON challenges(opponent_handle);
					CREATE INDEX IF NOT EXISTS idx_challenges_status ON challenges(status);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS challenges CASCADE").Error
			},
		},
		{
			Name: "2025_01_06_000000_create_rating_history_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS rating_history (
						id BIGSERIAL PRIMARY KEY,
						player_handle VARCHAR(64) NOT NULL,
						match_id VARCHAR(36) NOT NULL,
						sport VARCHAR(32) NOT NULL,
						rating_before INTEGER NOT NULL,
						rating_after INTEGER NOT NULL,
						rating_change INTEGER NOT NULL,
						opponent_handle VARCHAR(64) NOT NULL,
						created_at TIMESTAMP DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_rating_history_player ON rating_history(player_handle);
					CREATE INDEX IF NOT EXISTS idx_rating_history_match ON rating_history(match_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS rating_history CASCADE").Error
			},
		},
	}
}
