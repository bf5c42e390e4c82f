package database

// Schema contains all SQL statements for creating tables and indexes.
//
// References between tables (users.team_id, activities.user_id,
// leaderboard.user_id) are stored as plain identifiers with no foreign key
// constraints: a reference may point at a row that no longer exists, and
// deleting a team does not cascade to its users.
const Schema = `
-- Users table: people tracked by the app
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    name TEXT NOT NULL,
    team_id TEXT,
    created_at INTEGER NOT NULL
);

-- Teams table: named groups of users
CREATE TABLE IF NOT EXISTS teams (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

-- Activities table: individual exercise sessions
CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    activity_type TEXT NOT NULL,
    duration INTEGER NOT NULL,  -- minutes
    distance REAL,              -- km, only for distance-based types
    calories INTEGER NOT NULL,
    date INTEGER NOT NULL,      -- when the activity happened
    created_at INTEGER NOT NULL
);

-- Leaderboard table: per-user totals derived from activities.
-- total_points and total_activities record what the entry was computed
-- from; updated_at records when. Rank is assigned across all rows.
CREATE TABLE IF NOT EXISTS leaderboard (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    total_points INTEGER NOT NULL DEFAULT 0,
    total_activities INTEGER NOT NULL DEFAULT 0,
    rank INTEGER NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL
);

-- Workouts table: suggested workout routines
CREATE TABLE IF NOT EXISTS workouts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    difficulty_level TEXT NOT NULL,
    duration INTEGER NOT NULL,  -- minutes
    category TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

-- Uniqueness constraints
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_name ON teams(name);
CREATE UNIQUE INDEX IF NOT EXISTS idx_leaderboard_user ON leaderboard(user_id);

-- Query indexes
CREATE INDEX IF NOT EXISTS idx_users_team ON users(team_id);
CREATE INDEX IF NOT EXISTS idx_activities_user ON activities(user_id);
CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date DESC);
CREATE INDEX IF NOT EXISTS idx_leaderboard_points ON leaderboard(total_points DESC);
`
