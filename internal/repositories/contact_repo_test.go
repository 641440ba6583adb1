package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBirthdayInWindow(t *testing.T) {
	from := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	// The birth year is irrelevant, only month and day count.
	assert.True(t, birthdayInWindow(time.Date(1990, time.June, 10, 0, 0, 0, 0, time.UTC), from, 7))
	assert.True(t, birthdayInWindow(time.Date(1990, time.June, 17, 0, 0, 0, 0, time.UTC), from, 7))
	assert.False(t, birthdayInWindow(time.Date(1990, time.June, 18, 0, 0, 0, 0, time.UTC), from, 7))
	assert.False(t, birthdayInWindow(time.Date(1990, time.June, 9, 0, 0, 0, 0, time.UTC), from, 7))

	// A zero birthday never matches.
	assert.False(t, birthdayInWindow(time.Time{}, from, 7))
}

func TestBirthdayInWindow_YearWrap(t *testing.T) {
	from := time.Date(2024, time.December, 29, 0, 0, 0, 0, time.UTC)

	// The window crosses into January of the next year.
	assert.True(t, birthdayInWindow(time.Date(1990, time.December, 31, 0, 0, 0, 0, time.UTC), from, 7))
	assert.True(t, birthdayInWindow(time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC), from, 7))
	assert.False(t, birthdayInWindow(time.Date(1990, time.January, 6, 0, 0, 0, 0, time.UTC), from, 7))
	assert.False(t, birthdayInWindow(time.Date(1990, time.December, 28, 0, 0, 0, 0, time.UTC), from, 7))
}
