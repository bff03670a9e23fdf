package warehouse

import (
	"regexp"
	"strings"
	"testing"

	"github.com/sparkify/warehouse-etl/internal/config"
)

func testLoadConfig() config.LoadConfig {
	return config.LoadConfig{
		EventsURI:    "s3://sparkify-archive/log_data",
		SongsURI:     "s3://sparkify-archive/song_data",
		JSONPathsURI: "s3://sparkify-archive/log_json_path.json",
		IAMRole:      "arn:aws:iam::123456789012:role/warehouse-read",
		Region:       "us-west-2",
	}
}

// tableName extracts the target table from a statement name like
// "create_staging_events" or "drop_songplays".
func tableName(stmtName string) string {
	name := strings.TrimPrefix(stmtName, "create_")
	return strings.TrimPrefix(name, "drop_")
}

func TestCreateStatements(t *testing.T) {
	catalog := NewCatalog(testLoadConfig())
	creates := catalog.CreateStatements()

	if len(creates) != 7 {
		t.Fatalf("Expected 7 create statements, got %d", len(creates))
	}

	// The fact table must come last; it references every dimension.
	last := creates[len(creates)-1]
	if tableName(last.Name) != "songplays" {
		t.Errorf("Expected songplays to be created last, got %s", last.Name)
	}

	seen := make(map[string]bool)
	for _, stmt := range creates {
		table := tableName(stmt.Name)
		if seen[table] {
			t.Errorf("Duplicate create statement for table %s", table)
		}
		seen[table] = true

		if !strings.Contains(stmt.SQL, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("Statement %s does not create table %s", stmt.Name, table)
		}
	}
}

// TestCreateOrderSatisfiesReferences checks the ordering invariant: every
// table referenced by a foreign key must be created before its dependent.
func TestCreateOrderSatisfiesReferences(t *testing.T) {
	catalog := NewCatalog(testLoadConfig())
	creates := catalog.CreateStatements()

	refPattern := regexp.MustCompile(`REFERENCES\s+(\w+)`)
	created := make(map[string]bool)

	for _, stmt := range creates {
		for _, match := range refPattern.FindAllStringSubmatch(stmt.SQL, -1) {
			referenced := match[1]
			if !created[referenced] {
				t.Errorf("Statement %s references %s before it is created",
					stmt.Name, referenced)
			}
		}
		created[tableName(stmt.Name)] = true
	}
}

// TestDropOrderIsReverseOfCreate checks that drops run in exactly the
// reverse of create order, so foreign keys never block a drop.
func TestDropOrderIsReverseOfCreate(t *testing.T) {
	catalog := NewCatalog(testLoadConfig())
	creates := catalog.CreateStatements()
	drops := catalog.DropStatements()

	if len(drops) != len(creates) {
		t.Fatalf("Expected %d drop statements, got %d", len(creates), len(drops))
	}

	for i, drop := range drops {
		create := creates[len(creates)-1-i]
		if tableName(drop.Name) != tableName(create.Name) {
			t.Errorf("Drop %d is %s, expected reverse of create order (%s)",
				i, tableName(drop.Name), tableName(create.Name))
		}
		if !strings.Contains(drop.SQL, "DROP TABLE IF EXISTS "+tableName(drop.Name)) {
			t.Errorf("Statement %s does not drop table %s", drop.Name, tableName(drop.Name))
		}
	}
}

func TestCopyStatements(t *testing.T) {
	load := testLoadConfig()
	catalog := NewCatalog(load)
	copies := catalog.CopyStatements()

	if len(copies) != 2 {
		t.Fatalf("Expected 2 copy statements, got %d", len(copies))
	}

	events := copies[0]
	if !strings.Contains(events.SQL, "COPY staging_events") {
		t.Errorf("Events copy does not target staging_events:\n%s", events.SQL)
	}
	for _, want := range []string{load.EventsURI, load.IAMRole, load.Region, load.JSONPathsURI} {
		if !strings.Contains(events.SQL, want) {
			t.Errorf("Events copy missing %q:\n%s", want, events.SQL)
		}
	}

	songs := copies[1]
	if !strings.Contains(songs.SQL, "COPY staging_songs") {
		t.Errorf("Songs copy does not target staging_songs:\n%s", songs.SQL)
	}
	for _, want := range []string{load.SongsURI, load.IAMRole, load.Region, "JSON 'auto'"} {
		if !strings.Contains(songs.SQL, want) {
			t.Errorf("Songs copy missing %q:\n%s", want, songs.SQL)
		}
	}
	if strings.Contains(songs.SQL, load.JSONPathsURI) {
		t.Errorf("Songs copy should not use the events JSON-paths descriptor:\n%s", songs.SQL)
	}
}
