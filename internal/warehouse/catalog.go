// Package warehouse defines the SQL statement catalog for the Sparkify
// star schema: staging table and dimensional DDL, the staging bulk loads,
// the dimensional transforms, and the reporting queries.
//
// The catalog is pure data. Statement ordering is the load-bearing part:
// songplays carries foreign keys into all four dimensions, so creates run
// staging and dimensions first and drops run in exact reverse. Execution
// belongs to the pipeline package.
package warehouse

import "github.com/sparkify/warehouse-etl/internal/config"

// Statement is a single named SQL statement. The warehouse commits each
// statement on its own; the pipeline never opens explicit transactions.
type Statement struct {
	Name string
	SQL  string
}

// Catalog holds every statement of the ETL pipeline, built from
// configuration at pipeline start. Nothing in this package is initialized
// at import time.
type Catalog struct {
	load config.LoadConfig
}

// NewCatalog builds a statement catalog for the given staging-load
// configuration.
func NewCatalog(load config.LoadConfig) *Catalog {
	return &Catalog{load: load}
}

// Table DDL. The identity columns use the GENERATED BY DEFAULT AS IDENTITY
// form shared by Redshift and PostgreSQL, so integration tests can run
// against a plain PostgreSQL server.

const createStagingEventsSQL = `
CREATE TABLE IF NOT EXISTS staging_events (
    event_id        BIGINT GENERATED BY DEFAULT AS IDENTITY,
    artist          VARCHAR(512),
    auth            VARCHAR(32),
    first_name      VARCHAR(128),
    gender          CHAR(1),
    item_in_session INTEGER,
    last_name       VARCHAR(128),
    length          DOUBLE PRECISION,
    level           VARCHAR(16),
    location        VARCHAR(512),
    method          VARCHAR(8),
    page            VARCHAR(64),
    registration    BIGINT,
    session_id      INTEGER,
    song            VARCHAR(512),
    status          INTEGER,
    ts              BIGINT,
    user_agent      VARCHAR(1024),
    user_id         INTEGER
)`

const createStagingSongsSQL = `
CREATE TABLE IF NOT EXISTS staging_songs (
    song_id          VARCHAR(32) PRIMARY KEY,
    num_songs        INTEGER,
    title            VARCHAR(512),
    artist_id        VARCHAR(32),
    artist_name      VARCHAR(512),
    artist_location  VARCHAR(512),
    artist_latitude  DOUBLE PRECISION,
    artist_longitude DOUBLE PRECISION,
    duration         DOUBLE PRECISION,
    year             INTEGER
)`

const createUsersSQL = `
CREATE TABLE IF NOT EXISTS users (
    user_id    INTEGER PRIMARY KEY,
    first_name VARCHAR(128),
    last_name  VARCHAR(128),
    gender     CHAR(1),
    level      VARCHAR(16)
)`

const createSongsSQL = `
CREATE TABLE IF NOT EXISTS songs (
    song_id   VARCHAR(32) PRIMARY KEY,
    title     VARCHAR(512) NOT NULL,
    artist_id VARCHAR(32) NOT NULL,
    year      INTEGER,
    duration  DOUBLE PRECISION
)`

const createArtistsSQL = `
CREATE TABLE IF NOT EXISTS artists (
    artist_id VARCHAR(32) PRIMARY KEY,
    name      VARCHAR(512) NOT NULL,
    location  VARCHAR(512),
    latitude  DOUBLE PRECISION,
    longitude DOUBLE PRECISION
)`

const createTimeSQL = `
CREATE TABLE IF NOT EXISTS time (
    start_time TIMESTAMP PRIMARY KEY,
    hour       INTEGER NOT NULL,
    day        INTEGER NOT NULL,
    week       INTEGER NOT NULL,
    month      INTEGER NOT NULL,
    year       INTEGER NOT NULL,
    weekday    INTEGER NOT NULL
)`

// songplays references every dimension, so it must be created last and
// dropped first.
const createSongplaysSQL = `
CREATE TABLE IF NOT EXISTS songplays (
    songplay_id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    start_time  TIMESTAMP NOT NULL REFERENCES time (start_time),
    user_id     INTEGER NOT NULL REFERENCES users (user_id),
    level       VARCHAR(16),
    song_id     VARCHAR(32) NOT NULL REFERENCES songs (song_id),
    artist_id   VARCHAR(32) NOT NULL REFERENCES artists (artist_id),
    session_id  INTEGER,
    location    VARCHAR(512),
    user_agent  VARCHAR(1024)
)`

// CreateStatements returns the table creation statements in dependency
// order: staging and dimension tables before the fact table. The order is
// a hard precondition, not something checked at runtime.
func (c *Catalog) CreateStatements() []Statement {
	return []Statement{
		{Name: "create_staging_events", SQL: createStagingEventsSQL},
		{Name: "create_staging_songs", SQL: createStagingSongsSQL},
		{Name: "create_users", SQL: createUsersSQL},
		{Name: "create_songs", SQL: createSongsSQL},
		{Name: "create_artists", SQL: createArtistsSQL},
		{Name: "create_time", SQL: createTimeSQL},
		{Name: "create_songplays", SQL: createSongplaysSQL},
	}
}

// DropStatements returns the table drop statements in reverse dependency
// order, so foreign keys never block a drop.
func (c *Catalog) DropStatements() []Statement {
	return []Statement{
		{Name: "drop_songplays", SQL: "DROP TABLE IF EXISTS songplays"},
		{Name: "drop_time", SQL: "DROP TABLE IF EXISTS time"},
		{Name: "drop_artists", SQL: "DROP TABLE IF EXISTS artists"},
		{Name: "drop_songs", SQL: "DROP TABLE IF EXISTS songs"},
		{Name: "drop_users", SQL: "DROP TABLE IF EXISTS users"},
		{Name: "drop_staging_songs", SQL: "DROP TABLE IF EXISTS staging_songs"},
		{Name: "drop_staging_events", SQL: "DROP TABLE IF EXISTS staging_events"},
	}
}
