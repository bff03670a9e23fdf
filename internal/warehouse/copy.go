package warehouse

import "fmt"

// Staging bulk loads. Each COPY ingests JSON files from object storage
// straight into a freshly created staging table. The warehouse treats a
// load as all-or-nothing: a malformed row, a bad format descriptor, or an
// invalid credential fails the whole statement.

// copyEventsSQLFormat loads the activity log. The log files don't match the
// staging column names, so a JSON-paths descriptor maps the fields.
const copyEventsSQLFormat = `
COPY staging_events (artist, auth, first_name, gender, item_in_session,
                     last_name, length, level, location, method, page,
                     registration, session_id, song, status, ts,
                     user_agent, user_id)
FROM '%s'
IAM_ROLE '%s'
REGION '%s'
FORMAT AS JSON '%s'`

// copySongsSQLFormat loads the song metadata, whose field names match the
// staging columns directly.
const copySongsSQLFormat = `
COPY staging_songs
FROM '%s'
IAM_ROLE '%s'
REGION '%s'
FORMAT AS JSON 'auto'`

// CopyStatements returns the two staging load statements: events first,
// then songs. The order between them carries no dependency; both only
// require their target table to exist.
func (c *Catalog) CopyStatements() []Statement {
	return []Statement{
		{
			Name: "copy_staging_events",
			SQL: fmt.Sprintf(copyEventsSQLFormat,
				c.load.EventsURI, c.load.IAMRole, c.load.Region, c.load.JSONPathsURI),
		},
		{
			Name: "copy_staging_songs",
			SQL: fmt.Sprintf(copySongsSQLFormat,
				c.load.SongsURI, c.load.IAMRole, c.load.Region),
		},
	}
}
