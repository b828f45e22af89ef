package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))
}

func TestIsValidNIK(t *testing.T) {
	tests := []struct {
		name  string
		nik   string
		valid bool
	}{
		{"legacy 9-digit code", "200100234", true},
		{"ktp-derived 18-digit code", "317404010190000123", true},
		{"too short", "12345678", false},
		{"too long", "1234567890123456789", false},
		{"non numeric", "20010023A", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidNIK(tt.nik))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-02-22")
	assert.True(t, ok)
	assert.Equal(t, 2026, date.Year())

	_, ok = IsValidDate("22-02-2026")
	assert.False(t, ok)

	_, ok = IsValidDate("2026-02-30")
	assert.False(t, ok)
}

func TestIsValidClockTime(t *testing.T) {
	tm, ok := IsValidClockTime("20:00:00")
	assert.True(t, ok)
	assert.Equal(t, 20, tm.Hour())

	tm, ok = IsValidClockTime("06:30")
	assert.True(t, ok)
	assert.Equal(t, 6, tm.Hour())
	assert.Equal(t, 30, tm.Minute())

	_, ok = IsValidClockTime("25:00")
	assert.False(t, ok)
}

func TestIsValidMonthYear(t *testing.T) {
	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))

	assert.True(t, IsValidYear(2026))
	assert.False(t, IsValidYear(1999))
}
