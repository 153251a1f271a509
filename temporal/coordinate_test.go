package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/internal/util"
	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/vocab"
)

func TestCoordinateFromTime(t *testing.T) {
	c := CoordinateFromTime(time.Date(2024, 3, 1, 12, 30, 15, 500_000_000, time.FixedZone("CET", 3600)), vocab.Gregorian)

	assert.Equal(t, 2024.0, *c.Year)
	assert.Equal(t, 3.0, *c.Month)
	assert.Equal(t, 1.0, *c.Day)
	assert.Equal(t, 11.0, *c.Hour, "coordinates are UTC")
	assert.Equal(t, 30.0, *c.Minute)
	assert.Equal(t, 15.5, *c.Second)
	assert.Equal(t, vocab.Gregorian, c.TRS)
}

func TestCompare(t *testing.T) {
	jan := Coordinate{Year: util.Ptr(2024.0), Month: util.Ptr(1.0), TRS: vocab.Gregorian}
	mar := Coordinate{Year: util.Ptr(2024.0), Month: util.Ptr(3.0), TRS: vocab.Gregorian}
	year := Coordinate{Year: util.Ptr(2024.0), TRS: vocab.Gregorian}

	tests := []struct {
		name string
		a, b Coordinate
		want int
	}{
		{"earlier month", jan, mar, -1},
		{"later month", mar, jan, 1},
		{"identical", jan, jan, 0},
		{"sparse compares equal as far as known", year, mar, 0},
		{"empty", Coordinate{TRS: vocab.Gregorian}, jan, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("different reference systems", func(t *testing.T) {
		unix := jan
		unix.TRS = vocab.UnixTime
		_, err := Compare(jan, unix)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrIncomparable))
	})
}

func TestCoordinateString(t *testing.T) {
	full := CoordinateFromTime(time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC), vocab.Gregorian)
	assert.Equal(t, "2024-03-01T09:05:07", full.String())

	sparse := Coordinate{Year: util.Ptr(-4500.0), Day: util.Ptr(2.0)}
	assert.Equal(t, "-4500-?-02", sparse.String())

	assert.Equal(t, "(none)", Coordinate{}.String())
	assert.True(t, Coordinate{}.IsZero())
	assert.False(t, full.IsZero())
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		lit  kb.Literal
		want float64
	}{
		{kb.Literal{Value: "2024", Datatype: vocab.XSDGYear}, 2024},
		{kb.Literal{Value: "-0500", Datatype: vocab.XSDGYear}, -500},
		{kb.Literal{Value: "2024Z", Datatype: vocab.XSDGYear}, 2024},
		{kb.Literal{Value: "2024+01:00", Datatype: vocab.XSDGYear}, 2024},
		{kb.Literal{Value: "--05", Datatype: vocab.XSDGMonth}, 5},
		{kb.Literal{Value: "---12", Datatype: vocab.XSDGDay}, 12},
		{kb.Literal{Value: "---12"}, 12},
		{kb.Literal{Value: " 12.75 ", Datatype: vocab.XSDDecimal}, 12.75},
	}
	for _, tt := range tests {
		got, err := ParseNumber(tt.lit)
		require.NoError(t, err, tt.lit.Value)
		assert.Equal(t, tt.want, got, tt.lit.Value)
	}

	_, err := ParseNumber(kb.Literal{Value: "twelve"})
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2024-03-01T12:00:00Z", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"2024-03-01T12:00:00+02:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01Z", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01 12:00:00", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(kb.Literal{Value: tt.value})
		require.NoError(t, err, tt.value)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.value, got)
	}

	_, err := ParseTimestamp(kb.Literal{Value: ""})
	assert.Error(t, err)
}

func TestParseXSDDuration(t *testing.T) {
	e, err := ParseXSDDuration(kb.Literal{Value: "-P2W"}, vocab.Gregorian)
	require.NoError(t, err)
	assert.Equal(t, -2.0, *e.Weeks)
	assert.Nil(t, e.Days)
	assert.Equal(t, vocab.Gregorian, e.TRS)

	zero, err := ParseXSDDuration(kb.Literal{Value: "PT0S"}, vocab.Gregorian)
	require.NoError(t, err)
	require.NotNil(t, zero.Seconds)
	assert.Equal(t, 0.0, *zero.Seconds)

	_, err = ParseXSDDuration(kb.Literal{Value: "two weeks"}, vocab.Gregorian)
	assert.Error(t, err)
}

func TestExtentString(t *testing.T) {
	e := Extent{Years: util.Ptr(1.0), Days: util.Ptr(10.0), Minutes: util.Ptr(30.0), TRS: vocab.Gregorian}
	assert.Equal(t, "P1Y10DT30M", e.String())

	weeks := Extent{Weeks: util.Ptr(-2.0)}
	assert.Equal(t, "P-2W", weeks.String())

	frac := Extent{Seconds: util.Ptr(1.5)}
	assert.Equal(t, "PT1.5S", frac.String())

	assert.Equal(t, "(none)", Extent{}.String())
}
