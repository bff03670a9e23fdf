package warehouse

// Reporting queries over the star schema. Every query takes the same
// inclusive date window as ($1 start, $2 end) parameters; no dates are
// baked into the query text.

// Query is a named reporting query.
type Query struct {
	Name        string
	Description string
	SQL         string
}

const topPlayedSongsSQL = `
SELECT s.title AS song, a.name AS artist, COUNT(*) AS plays
FROM songplays sp
JOIN songs s ON s.song_id = sp.song_id
JOIN artists a ON a.artist_id = sp.artist_id
WHERE sp.start_time::DATE BETWEEN $1 AND $2
GROUP BY s.title, a.name
ORDER BY plays DESC, song, artist
LIMIT 10`

const avgPlaysPerUserSQL = `
SELECT day, AVG(plays)::DOUBLE PRECISION AS avg_plays_per_user
FROM (
    SELECT sp.start_time::DATE AS day, sp.user_id, COUNT(*) AS plays
    FROM songplays sp
    WHERE sp.start_time::DATE BETWEEN $1 AND $2
    GROUP BY sp.start_time::DATE, sp.user_id
) per_user
GROUP BY day
ORDER BY day`

const playsPerDaySQL = `
SELECT sp.start_time::DATE AS day, COUNT(*) AS plays
FROM songplays sp
WHERE sp.start_time::DATE BETWEEN $1 AND $2
GROUP BY sp.start_time::DATE
ORDER BY day`

const listenersPerDaySQL = `
SELECT sp.start_time::DATE AS day, COUNT(DISTINCT sp.user_id) AS listeners
FROM songplays sp
WHERE sp.start_time::DATE BETWEEN $1 AND $2
GROUP BY sp.start_time::DATE
ORDER BY day`

// AnalyticsQueries returns the fixed reporting query set in execution
// order.
func (c *Catalog) AnalyticsQueries() []Query {
	return []Query{
		{
			Name:        "top_played_songs",
			Description: "Top-10 most-played (song, artist) pairs by play count",
			SQL:         topPlayedSongsSQL,
		},
		{
			Name:        "avg_plays_per_user",
			Description: "Average plays per listening user per day",
			SQL:         avgPlaysPerUserSQL,
		},
		{
			Name:        "plays_per_day",
			Description: "Total plays per day",
			SQL:         playsPerDaySQL,
		},
		{
			Name:        "listeners_per_day",
			Description: "Distinct listening users per day",
			SQL:         listenersPerDaySQL,
		},
	}
}
