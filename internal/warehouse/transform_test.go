package warehouse

import (
	"strings"
	"testing"
)

func TestTransformOrder(t *testing.T) {
	catalog := NewCatalog(testLoadConfig())
	transforms := catalog.TransformStatements()

	if len(transforms) != 5 {
		t.Fatalf("Expected 5 transform statements, got %d", len(transforms))
	}

	// Dimensions load before the fact table.
	wantOrder := []string{
		"insert_users", "insert_songs", "insert_artists", "insert_time",
		"insert_songplays",
	}
	for i, want := range wantOrder {
		if transforms[i].Name != want {
			t.Errorf("Transform %d is %s, expected %s", i, transforms[i].Name, want)
		}
	}
}

func TestUserTransformTieBreak(t *testing.T) {
	catalog := NewCatalog(testLoadConfig())
	users := catalog.TransformStatements()[0]

	// Duplicate user ids collapse deterministically: the latest event wins.
	for _, want := range []string{
		"PARTITION BY user_id",
		"ORDER BY ts DESC, event_id DESC",
		"user_id IS NOT NULL",
	} {
		if !strings.Contains(users.SQL, want) {
			t.Errorf("User transform missing %q:\n%s", want, users.SQL)
		}
	}
}

func TestArtistTransformDeduplicates(t *testing.T) {
	catalog := NewCatalog(testLoadConfig())
	artists := catalog.TransformStatements()[2]

	// Artist ids repeat across songs in the source data; the insert must
	// collapse them rather than trip the primary key.
	for _, want := range []string{
		"PARTITION BY artist_id",
		"ORDER BY song_id",
	} {
		if !strings.Contains(artists.SQL, want) {
			t.Errorf("Artist transform missing %q:\n%s", want, artists.SQL)
		}
	}
}

func TestTimeTransformConvention(t *testing.T) {
	catalog := NewCatalog(testLoadConfig())
	timeStmt := catalog.TransformStatements()[3]

	for _, want := range []string{
		"TIMESTAMP 'epoch' + ts / 1000 * INTERVAL '1 second'",
		"EXTRACT(DOW FROM start_time)",
		"SELECT DISTINCT",
	} {
		if !strings.Contains(timeStmt.SQL, want) {
			t.Errorf("Time transform missing %q:\n%s", want, timeStmt.SQL)
		}
	}
}

func TestSongplayTransformJoinAndFilter(t *testing.T) {
	catalog := NewCatalog(testLoadConfig())
	songplays := catalog.TransformStatements()[4]

	for _, want := range []string{
		"e.song = s.title",
		"e.artist = s.artist_name",
		"e.length = s.duration",
		"e.page = 'NextSong'",
	} {
		if !strings.Contains(songplays.SQL, want) {
			t.Errorf("Songplay transform missing %q:\n%s", want, songplays.SQL)
		}
	}
}

// TestTimeParts pins the reference breakdown for a fixed timestamp:
// 1541990000000 ms is 2018-11-12 02:33:20 UTC, a Monday in ISO week 46.
func TestTimeParts(t *testing.T) {
	hour, day, week, month, year, weekday := TimeParts(1541990000000)

	got := [6]int{hour, day, week, month, year, weekday}
	want := [6]int{2, 12, 46, 11, 2018, 1}
	if got != want {
		t.Errorf("TimeParts(1541990000000) = %v, want %v", got, want)
	}
}

func TestAnalyticsQueriesParameterized(t *testing.T) {
	catalog := NewCatalog(testLoadConfig())
	queries := catalog.AnalyticsQueries()

	if len(queries) != 4 {
		t.Fatalf("Expected 4 analytics queries, got %d", len(queries))
	}

	for _, q := range queries {
		// The window arrives as parameters; no literal dates in the text.
		if !strings.Contains(q.SQL, "BETWEEN $1 AND $2") {
			t.Errorf("Query %s is not window-parameterized:\n%s", q.Name, q.SQL)
		}
		if strings.Contains(q.SQL, "2018-") {
			t.Errorf("Query %s has a literal date baked in:\n%s", q.Name, q.SQL)
		}
	}

	if !strings.Contains(queries[0].SQL, "LIMIT 10") {
		t.Errorf("Top-played query should return 10 rows:\n%s", queries[0].SQL)
	}
}
