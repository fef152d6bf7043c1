package store

const schemaVersion = 3

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS workspaces (
	name TEXT PRIMARY KEY,
	created INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS folders (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	workspace TEXT NOT NULL DEFAULT '',
	parent_id INTEGER,
	created INTEGER NOT NULL,
	UNIQUE(name, workspace, parent_id)
);

CREATE INDEX IF NOT EXISTS folders_by_workspace ON folders(workspace);
CREATE INDEX IF NOT EXISTS folders_by_parent ON folders(parent_id);

CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY,
	heading TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	workspace TEXT NOT NULL DEFAULT '',
	folder_id INTEGER,
	trash INTEGER NOT NULL DEFAULT 0,
	created INTEGER NOT NULL,
	updated INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS entries_by_workspace ON entries(workspace);
CREATE INDEX IF NOT EXISTS entries_by_folder ON entries(folder_id);

CREATE TABLE IF NOT EXISTS shared_links (
	token TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL,
	target_type TEXT NOT NULL,
	target_id INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created INTEGER NOT NULL
);
`
