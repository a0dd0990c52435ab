// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Telltale Labs

package store

var clientSchema = []string{
	`CREATE TABLE IF NOT EXISTS stories (
		story_id   TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		category   TEXT NOT NULL DEFAULT '',
		version    INTEGER NOT NULL DEFAULT 0,
		checksum   TEXT NOT NULL DEFAULT '',
		payload    TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT 0
	);`,

	`CREATE TABLE IF NOT EXISTS assets (
		path       TEXT PRIMARY KEY,
		local_path TEXT NOT NULL,
		sha256     TEXT NOT NULL,
		size       INTEGER NOT NULL DEFAULT 0,
		cached_at  INTEGER NOT NULL DEFAULT 0
	);`,

	`CREATE TABLE IF NOT EXISTS sync_state (
		id             TEXT PRIMARY KEY,
		server_version INTEGER NOT NULL DEFAULT 0,
		asset_version  INTEGER NOT NULL DEFAULT 0,
		last_updated   INTEGER NOT NULL DEFAULT 0
	);`,

	`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`,
}

const (
	upsertCachedStory = `
		INSERT INTO stories (story_id, title, category, version, checksum, payload, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (story_id) DO UPDATE SET
			title      = excluded.title,
			category   = excluded.category,
			version    = excluded.version,
			checksum   = excluded.checksum,
			payload    = excluded.payload,
			updated_at = excluded.updated_at;`

	getCachedStories = `
		SELECT payload
		FROM stories
		ORDER BY story_id;`

	getCachedStoryChecksums = `
		SELECT story_id, checksum
		FROM stories;`

	deleteCachedStory = `
		DELETE FROM stories
		WHERE story_id = $1;`

	upsertCachedAsset = `
		INSERT INTO assets (path, local_path, sha256, size, cached_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (path) DO UPDATE SET
			local_path = excluded.local_path,
			sha256     = excluded.sha256,
			size       = excluded.size,
			cached_at  = excluded.cached_at;`

	getCachedAsset = `
		SELECT local_path, sha256
		FROM assets
		WHERE path = $1;`

	getAllCachedAssets = `
		SELECT path, local_path, sha256
		FROM assets
		ORDER BY path;`

	deleteCachedAsset = `
		DELETE FROM assets
		WHERE path = $1;`

	upsertSyncState = `
		INSERT INTO sync_state (id, server_version, asset_version, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			server_version = excluded.server_version,
			asset_version  = excluded.asset_version,
			last_updated   = excluded.last_updated;`

	getSyncState = `
		SELECT server_version, asset_version, last_updated
		FROM sync_state
		WHERE id = $1;`

	upsertKV = `
		INSERT INTO kv (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	getKV = `
		SELECT value
		FROM kv
		WHERE key = $1;`

	deleteKV = `
		DELETE FROM kv
		WHERE key = $1;`
)
