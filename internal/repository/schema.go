package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	handle        TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	avatar_url    TEXT NOT NULL DEFAULT '',
	bio           TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL CHECK (role IN ('student', 'mentor')),
	department    TEXT NOT NULL DEFAULT '',
	year          TEXT,
	posts_count   INTEGER NOT NULL DEFAULT 0,
	mentees       INTEGER,
	rating        TEXT,
	email         TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS posts (
	id               BIGSERIAL PRIMARY KEY,
	user_handle      TEXT NOT NULL REFERENCES users(handle),
	title            TEXT NOT NULL,
	content          TEXT NOT NULL,
	image_url        TEXT NOT NULL DEFAULT '',
	hashtags         TEXT[] NOT NULL DEFAULT '{}',
	likes            INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
	comments         INTEGER NOT NULL DEFAULT 0 CHECK (comments >= 0),
	shares           INTEGER NOT NULL DEFAULT 0 CHECK (shares >= 0),
	live_preview_url TEXT NOT NULL DEFAULT '',
	github_url       TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
	rejection_reason TEXT,
	version          INTEGER NOT NULL DEFAULT 1,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS post_comments (
	id          BIGSERIAL PRIMARY KEY,
	post_id     BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	user_handle TEXT NOT NULL REFERENCES users(handle),
	text        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS post_likes (
	post_id     BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	user_handle TEXT NOT NULL REFERENCES users(handle),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (post_id, user_handle)
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
	id          TEXT PRIMARY KEY,
	user_handle TEXT NOT NULL REFERENCES users(handle),
	token       TEXT UNIQUE NOT NULL,
	expires_at  TIMESTAMPTZ NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	revoked     BOOLEAN NOT NULL DEFAULT FALSE,
	revoked_at  TIMESTAMPTZ,
	ip_address  TEXT NOT NULL DEFAULT '',
	user_agent  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS project_scores (
	id     BIGSERIAL PRIMARY KEY,
	handle TEXT NOT NULL,
	title  TEXT NOT NULL,
	score  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS mentor_scores (
	id     BIGSERIAL PRIMARY KEY,
	handle TEXT NOT NULL,
	score  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS branch_scores (
	id    BIGSERIAL PRIMARY KEY,
	name  TEXT NOT NULL,
	score TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS creator_scores (
	id     BIGSERIAL PRIMARY KEY,
	handle TEXT NOT NULL,
	score  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_posts_user_handle ON posts(user_handle);
CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status);
CREATE INDEX IF NOT EXISTS idx_post_comments_post_id ON post_comments(post_id);
`

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
