package db

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            image_url TEXT
        );`,
	`CREATE TABLE IF NOT EXISTS businesses (
            id SERIAL PRIMARY KEY,
            owner_id INT NOT NULL REFERENCES users(id),
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            website TEXT,
            nip TEXT NOT NULL,
            pkd TEXT NOT NULL,
            image_url TEXT,
            logo_url TEXT,
            target_audience TEXT NOT NULL DEFAULT '',
            latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
            longitude DOUBLE PRECISION NOT NULL DEFAULT 0
        );`,
	`CREATE TABLE IF NOT EXISTS tags (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE
        );`,
	`CREATE TABLE IF NOT EXISTS business_tags (
            business_id INT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
            tag_id INT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
            PRIMARY KEY(business_id, tag_id)
        );`,
	`CREATE TABLE IF NOT EXISTS adspace_types (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE
        );`,
	`CREATE TABLE IF NOT EXISTS adspaces (
            id SERIAL PRIMARY KEY,
            business_id INT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
            type_id INT NOT NULL REFERENCES adspace_types(id),
            name TEXT NOT NULL,
            description TEXT,
            image_url TEXT NOT NULL DEFAULT '/offer_1.png',
            max_width DOUBLE PRECISION NOT NULL,
            max_height DOUBLE PRECISION NOT NULL,
            is_barter_available BOOLEAN NOT NULL DEFAULT FALSE,
            price_per_week DOUBLE PRECISION,
            in_use BOOLEAN NOT NULL DEFAULT FALSE
        );`,
	`CREATE TABLE IF NOT EXISTS ratings (
            id SERIAL PRIMARY KEY,
            business_id INT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
            user_id INT NOT NULL REFERENCES users(id),
            score INT NOT NULL CHECK (score BETWEEN 1 AND 5),
            comment TEXT,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
	`CREATE TABLE IF NOT EXISTS chats (
            id SERIAL PRIMARY KEY,
            user1_id INT NOT NULL REFERENCES users(id),
            user2_id INT NOT NULL REFERENCES users(id),
            created_at TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE(user1_id, user2_id),
            CHECK (user1_id < user2_id)
        );`,
	`CREATE TABLE IF NOT EXISTS chat_adspaces (
            chat_id INT NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
            adspace_id INT NOT NULL REFERENCES adspaces(id) ON DELETE CASCADE,
            linked_at TIMESTAMPTZ DEFAULT NOW(),
            PRIMARY KEY(chat_id, adspace_id)
        );`,
	`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            chat_id INT NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
            sender_id INT NOT NULL REFERENCES users(id),
            content TEXT NOT NULL CHECK (content <> ''),
            is_read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
        );`,
	`CREATE INDEX IF NOT EXISTS messages_chat_created_idx ON messages (chat_id, created_at, id);`,
	`CREATE INDEX IF NOT EXISTS messages_unread_idx ON messages (chat_id, sender_id) WHERE is_read = FALSE;`,
}

func runMigrations(ctx context.Context, db *sqlx.DB) error {
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	log.Printf("database migrations applied: count=%d", len(migrations))
	return nil
}
