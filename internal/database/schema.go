package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates the five tables of the service in dependency
// order.  The siap/cpf unique indexes are the store-level safety net
// behind the application's own uniqueness pre-checks.  The history
// table intentionally carries no foreign key to reservations: a history
// entry is an archival snapshot and must survive the deletion of the
// reservation it was taken from.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name     VARCHAR(255) NOT NULL,
		key_name VARCHAR(255) NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS responsibles (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name       VARCHAR(255) NOT NULL,
		siap       VARCHAR(255) NOT NULL,
		cpf        VARCHAR(255) NOT NULL,
		birth_date DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_responsibles_siap (siap),
		UNIQUE KEY uq_responsibles_cpf (cpf)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		room_id        BIGINT UNSIGNED NOT NULL,
		responsible_id BIGINT UNSIGNED NOT NULL,
		start_time     DATETIME NOT NULL,
		end_time       DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_reservations_room (room_id),
		CONSTRAINT fk_reservations_room FOREIGN KEY (room_id) REFERENCES rooms (id),
		CONSTRAINT fk_reservations_responsible FOREIGN KEY (responsible_id) REFERENCES responsibles (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS finalizations (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		reservation_id BIGINT UNSIGNED NOT NULL,
		finalized_at   DATETIME NOT NULL,
		PRIMARY KEY (id),
		CONSTRAINT fk_finalizations_reservation FOREIGN KEY (reservation_id) REFERENCES reservations (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS history (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		reservation_id  BIGINT UNSIGNED NOT NULL,
		room_id         BIGINT UNSIGNED NOT NULL,
		responsible_id  BIGINT UNSIGNED NOT NULL,
		start_time      DATETIME NOT NULL,
		end_time_actual DATETIME NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  It is idempotent and runs
// once at startup before the server starts accepting requests.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
