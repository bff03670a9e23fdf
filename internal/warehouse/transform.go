package warehouse

// Dimensional transforms. Each statement is one INSERT ... SELECT from the
// staging tables and commits atomically. Dimension transforms must run
// before the fact transform because songplays references all four
// dimensions.

// insertUsersSQL collapses duplicate user ids. When the same user appears
// with different level or name values, the row from the latest event wins
// (ROW_NUMBER over ts DESC, event_id DESC as a stable tiebreaker), so the
// result is deterministic across runs on identical input.
const insertUsersSQL = `
INSERT INTO users (user_id, first_name, last_name, gender, level)
SELECT user_id, first_name, last_name, gender, level
FROM (
    SELECT user_id, first_name, last_name, gender, level,
           ROW_NUMBER() OVER (
               PARTITION BY user_id
               ORDER BY ts DESC, event_id DESC
           ) AS rn
    FROM staging_events
    WHERE page = 'NextSong' AND user_id IS NOT NULL
) latest
WHERE rn = 1`

// insertSongsSQL is a direct projection; staging_songs is already keyed by
// song_id.
const insertSongsSQL = `
INSERT INTO songs (song_id, title, artist_id, year, duration)
SELECT song_id, title, artist_id, year, duration
FROM staging_songs`

// insertArtistsSQL de-duplicates artist ids, which repeat across songs in
// the source data. The row belonging to the lowest song_id wins.
const insertArtistsSQL = `
INSERT INTO artists (artist_id, name, location, latitude, longitude)
SELECT artist_id, artist_name, artist_location, artist_latitude, artist_longitude
FROM (
    SELECT artist_id, artist_name, artist_location,
           artist_latitude, artist_longitude,
           ROW_NUMBER() OVER (
               PARTITION BY artist_id
               ORDER BY song_id
           ) AS rn
    FROM staging_songs
) first_song
WHERE rn = 1`

// insertTimeSQL derives one row per distinct play timestamp. Event
// timestamps are epoch milliseconds; the conversion and the calendar
// breakdown are UTC. Weekday follows EXTRACT(DOW): Sunday=0 .. Saturday=6.
const insertTimeSQL = `
INSERT INTO time (start_time, hour, day, week, month, year, weekday)
SELECT DISTINCT
    start_time,
    EXTRACT(HOUR FROM start_time)::INTEGER,
    EXTRACT(DAY FROM start_time)::INTEGER,
    EXTRACT(WEEK FROM start_time)::INTEGER,
    EXTRACT(MONTH FROM start_time)::INTEGER,
    EXTRACT(YEAR FROM start_time)::INTEGER,
    EXTRACT(DOW FROM start_time)::INTEGER
FROM (
    SELECT TIMESTAMP 'epoch' + ts / 1000 * INTERVAL '1 second' AS start_time
    FROM staging_events
    WHERE page = 'NextSong'
) plays`

// insertSongplaysSQL materializes the fact table. Events join to song
// metadata on exact (title, artist name, duration) equality; events with
// no match are silently dropped. The equality match on the floating-point
// duration mirrors the source dataset's semantics.
const insertSongplaysSQL = `
INSERT INTO songplays (start_time, user_id, level, song_id, artist_id,
                       session_id, location, user_agent)
SELECT
    TIMESTAMP 'epoch' + e.ts / 1000 * INTERVAL '1 second',
    e.user_id,
    e.level,
    s.song_id,
    s.artist_id,
    e.session_id,
    e.location,
    e.user_agent
FROM staging_events e
JOIN staging_songs s
  ON e.song = s.title
 AND e.artist = s.artist_name
 AND e.length = s.duration
WHERE e.page = 'NextSong'`

// TransformStatements returns the five dimensional transforms in execution
// order: the four dimensions, then the fact table.
func (c *Catalog) TransformStatements() []Statement {
	return []Statement{
		{Name: "insert_users", SQL: insertUsersSQL},
		{Name: "insert_songs", SQL: insertSongsSQL},
		{Name: "insert_artists", SQL: insertArtistsSQL},
		{Name: "insert_time", SQL: insertTimeSQL},
		{Name: "insert_songplays", SQL: insertSongplaysSQL},
	}
}
