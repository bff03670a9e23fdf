//-------------------------------------------------------------------------
//
// Sparkify Warehouse ETL
//
// Copyright (c) 2025 - 2026, Sparkify Data Engineering
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen generates synthetic staging data, so the transform and
// analytics stages can run against warehouses with no object-storage
// access (local development, integration tests).
package datagen

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides fake data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return NewFakerWithSeed(uint64(time.Now().UnixNano()))
}

// NewFakerWithSeed creates a new Faker with a specific seed for
// reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// LastName generates a random last name.
func (f *Faker) LastName() string {
	return f.faker.LastName()
}

// City generates a random city name.
func (f *Faker) City() string {
	return f.faker.City()
}

// State generates a random US state abbreviation.
func (f *Faker) State() string {
	return f.faker.StateAbr()
}

// Latitude generates a random latitude.
func (f *Faker) Latitude() float64 {
	return f.faker.Latitude()
}

// Longitude generates a random longitude.
func (f *Faker) Longitude() float64 {
	return f.faker.Longitude()
}

// UserAgent generates a random browser user agent.
func (f *Faker) UserAgent() string {
	return f.faker.UserAgent()
}

// Word generates a random word.
func (f *Faker) Word() string {
	return f.faker.Word()
}

// SongTitle generates a plausible song title.
func (f *Faker) SongTitle() string {
	words := f.Int(1, 4)
	parts := make([]string, words)
	for i := range parts {
		parts[i] = f.faker.HipsterWord()
	}
	title := strings.Join(parts, " ")
	return strings.ToUpper(title[:1]) + title[1:]
}

// BandName generates a plausible artist name.
func (f *Faker) BandName() string {
	adjective := f.faker.Adjective()
	noun := f.faker.NounCommon()
	name := adjective + " " + noun
	return strings.ToUpper(name[:1]) + name[1:]
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.faker.Bool()
}

// Date generates a random time within a range.
func (f *Faker) Date(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}

// StringN generates a random string of letters of length n.
func (f *Faker) StringN(n int) string {
	return f.faker.LetterN(uint(n))
}

// Digits generates a random string of digits of length n.
func (f *Faker) Digits(n int) string {
	return f.faker.DigitN(uint(n))
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element based on weights.
func ChooseWeighted[T any](f *Faker, items []T, weights []int) T {
	if len(items) == 0 || len(weights) == 0 {
		var zero T
		return zero
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	r := f.Int(1, totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}

	return items[len(items)-1]
}
