package mysql

import "context"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id            BIGINT AUTO_INCREMENT PRIMARY KEY,
        username      VARCHAR(64)  NOT NULL,
        email         VARCHAR(255) NOT NULL,
        password_hash VARCHAR(255) NOT NULL,
        role          VARCHAR(32)  NOT NULL DEFAULT 'user',
        created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
        UNIQUE KEY uq_users_username (username),
        UNIQUE KEY uq_users_email (email)
    ) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS trains (
        id              BIGINT AUTO_INCREMENT PRIMARY KEY,
        origin          VARCHAR(128) NOT NULL,
        destination     VARCHAR(128) NOT NULL,
        total_seats     INT NOT NULL,
        available_seats INT NOT NULL,
        created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        KEY idx_trains_route (origin, destination),
        CONSTRAINT chk_trains_seats CHECK (available_seats >= 0 AND available_seats <= total_seats)
    ) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS bookings (
        id         CHAR(36) PRIMARY KEY,
        train_id   BIGINT NOT NULL,
        user_id    BIGINT NOT NULL,
        seat_count INT NOT NULL DEFAULT 1,
        status     VARCHAR(32) NOT NULL DEFAULT 'confirmed',
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        KEY idx_bookings_user (user_id),
        CONSTRAINT fk_bookings_train FOREIGN KEY (train_id) REFERENCES trains (id)
    ) ENGINE=InnoDB`,
}

// EnsureSchema creates the tables on startup when they do not exist yet.
// Bookings rows are append-only; corrections are out of scope, so no UPDATE
// or DELETE ever touches that table.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
