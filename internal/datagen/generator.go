//-------------------------------------------------------------------------
//
// Sparkify Warehouse ETL
//
// Copyright (c) 2025 - 2026, Sparkify Data Engineering
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"context"
	"fmt"
	"time"

	"github.com/sparkify/warehouse-etl/internal/config"
	"github.com/sparkify/warehouse-etl/internal/db"
	"github.com/sparkify/warehouse-etl/internal/logging"
)

// StagingSong mirrors one staging_songs row.
type StagingSong struct {
	SongID          string
	NumSongs        int
	Title           string
	ArtistID        string
	ArtistName      string
	ArtistLocation  string
	ArtistLatitude  float64
	ArtistLongitude float64
	Duration        float64
	Year            int
}

// StagingEvent mirrors one staging_events row. Pointer fields are NULL in
// the staging table when nil.
type StagingEvent struct {
	Artist        *string
	Auth          string
	FirstName     string
	Gender        string
	ItemInSession int
	LastName      string
	Length        *float64
	Level         string
	Location      string
	Method        string
	Page          string
	Registration  int64
	SessionID     int
	Song          *string
	Status        int
	TS            int64
	UserAgent     string
	UserID        int
}

// listener is the per-user state threaded through event generation.
type listener struct {
	id        int
	firstName string
	lastName  string
	gender    string
	level     string
	location  string
	userAgent string
}

// Generator produces synthetic staging rows shaped like the Sparkify
// source dataset: song metadata with artists repeating across songs, and
// activity logs where most plays reference a known song.
type Generator struct {
	faker *Faker
	cfg   config.SeedConfig
}

// NewGenerator creates a generator for the given seed configuration.
func NewGenerator(cfg config.SeedConfig) *Generator {
	faker := NewFaker()
	if cfg.RandomSeed != 0 {
		faker = NewFakerWithSeed(cfg.RandomSeed)
	}
	return &Generator{faker: faker, cfg: cfg}
}

// Seed populates the staging tables with synthetic data. The target tables
// must already exist (run reset first); rows append to whatever is there.
func (g *Generator) Seed(ctx context.Context, exec db.Executor) error {
	songs := g.GenerateSongs(g.cfg.Songs)
	events := g.GenerateEvents(g.cfg.Events, songs)

	logging.Info().
		Int("songs", len(songs)).
		Int("events", len(events)).
		Msg("Seeding staging tables")

	for _, s := range songs {
		_, err := exec.Exec(ctx, `
			INSERT INTO staging_songs (song_id, num_songs, title, artist_id,
			                           artist_name, artist_location,
			                           artist_latitude, artist_longitude,
			                           duration, year)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, s.SongID, s.NumSongs, s.Title, s.ArtistID, s.ArtistName,
			s.ArtistLocation, s.ArtistLatitude, s.ArtistLongitude,
			s.Duration, s.Year)
		if err != nil {
			return fmt.Errorf("failed to seed staging_songs: %w", err)
		}
	}

	for _, e := range events {
		_, err := exec.Exec(ctx, `
			INSERT INTO staging_events (artist, auth, first_name, gender,
			                            item_in_session, last_name, length,
			                            level, location, method, page,
			                            registration, session_id, song,
			                            status, ts, user_agent, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			        $14, $15, $16, $17, $18)
		`, e.Artist, e.Auth, e.FirstName, e.Gender, e.ItemInSession,
			e.LastName, e.Length, e.Level, e.Location, e.Method, e.Page,
			e.Registration, e.SessionID, e.Song, e.Status, e.TS,
			e.UserAgent, e.UserID)
		if err != nil {
			return fmt.Errorf("failed to seed staging_events: %w", err)
		}
	}

	logging.Info().Msg("Staging tables seeded")
	return nil
}

// GenerateSongs produces count song metadata rows. The artist pool is
// roughly a third of the song count, so artist ids repeat across songs the
// way they do in the source dataset.
func (g *Generator) GenerateSongs(count int) []StagingSong {
	type artist struct {
		id        string
		name      string
		location  string
		latitude  float64
		longitude float64
	}

	numArtists := max(1, count/3)
	artists := make([]artist, numArtists)
	for i := range artists {
		artists[i] = artist{
			id:        "AR" + g.faker.Digits(10),
			name:      g.faker.BandName(),
			location:  g.faker.City() + ", " + g.faker.State(),
			latitude:  g.faker.Latitude(),
			longitude: g.faker.Longitude(),
		}
	}

	songs := make([]StagingSong, count)
	for i := range songs {
		a := Choose(g.faker, artists)
		songs[i] = StagingSong{
			SongID:          "SO" + g.faker.Digits(10),
			NumSongs:        1,
			Title:           g.faker.SongTitle(),
			ArtistID:        a.id,
			ArtistName:      a.name,
			ArtistLocation:  a.location,
			ArtistLatitude:  a.latitude,
			ArtistLongitude: a.longitude,
			Duration:        g.faker.Float64(45, 900),
			Year:            g.faker.Int(1960, 2018),
		}
	}
	return songs
}

// GenerateEvents produces count activity log rows spread over November
// 2018 (the window the default analytics configuration covers). Around
// three quarters are plays of a known song; the rest are plays of songs
// missing from the metadata or non-play pages, so the fact transform has
// rows to drop.
func (g *Generator) GenerateEvents(count int, songs []StagingSong) []StagingEvent {
	windowStart := time.Date(2018, time.November, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2018, time.December, 1, 0, 0, 0, 0, time.UTC)

	numListeners := max(1, count/25)
	listeners := make([]listener, numListeners)
	for i := range listeners {
		gender := "F"
		if g.faker.Bool() {
			gender = "M"
		}
		listeners[i] = listener{
			id:        i + 1,
			firstName: g.faker.FirstName(),
			lastName:  g.faker.LastName(),
			gender:    gender,
			level:     ChooseWeighted(g.faker, []string{"free", "paid"}, []int{65, 35}),
			location:  g.faker.City() + ", " + g.faker.State(),
			userAgent: g.faker.UserAgent(),
		}
	}

	kinds := []string{"known_play", "unknown_play", "other_page"}
	weights := []int{75, 15, 10}

	events := make([]StagingEvent, count)
	for i := range events {
		l := &listeners[g.faker.Int(0, numListeners-1)]

		// Occasional subscription change, so the same user id shows up
		// with different level values across events.
		if g.faker.Int(1, 100) <= 3 {
			if l.level == "free" {
				l.level = "paid"
			} else {
				l.level = "free"
			}
		}

		ts := g.faker.Date(windowStart, windowEnd).UnixMilli()
		e := StagingEvent{
			Auth:          "Logged In",
			FirstName:     l.firstName,
			Gender:        l.gender,
			ItemInSession: g.faker.Int(0, 40),
			LastName:      l.lastName,
			Level:         l.level,
			Location:      l.location,
			Method:        "PUT",
			Page:          "NextSong",
			Registration:  ts - int64(g.faker.Int(30, 400))*24*3600*1000,
			SessionID:     g.faker.Int(1, count/4+1),
			Status:        200,
			TS:            ts,
			UserAgent:     l.userAgent,
			UserID:        l.id,
		}

		switch ChooseWeighted(g.faker, kinds, weights) {
		case "known_play":
			s := Choose(g.faker, songs)
			e.Artist = &s.ArtistName
			e.Song = &s.Title
			e.Length = &s.Duration
		case "unknown_play":
			artist := g.faker.BandName()
			song := g.faker.SongTitle()
			length := g.faker.Float64(45, 900)
			e.Artist = &artist
			e.Song = &song
			e.Length = &length
		case "other_page":
			e.Page = Choose(g.faker, []string{"Home", "Logout", "Upgrade", "Settings"})
			e.Method = "GET"
		}

		events[i] = e
	}
	return events
}
