package trs

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/internal/util"
	"github.com/teranos/chronos/temporal"
	"github.com/teranos/chronos/vocab"
)

func TestParseUnit(t *testing.T) {
	for _, in := range []string{vocab.UnitYear, "time:unitYear", "unitYear", "year", "Years", " year "} {
		got, ok := ParseUnit(in)
		assert.True(t, ok, in)
		assert.Equal(t, vocab.UnitYear, got, in)
	}
	for _, in := range []string{"", "fortnight", "time:unitFortnight"} {
		_, ok := ParseUnit(in)
		assert.False(t, ok, in)
	}

	secs, ok := UnitSeconds(vocab.UnitWeek)
	require.True(t, ok)
	assert.Equal(t, 7*SecondsPerDay, secs)
}

func TestGregorian(t *testing.T) {
	g := NewGregorian("")
	assert.Equal(t, vocab.Gregorian, g.Name())
	assert.Equal(t, KindCalendar, g.Kind())

	c := temporal.Coordinate{Year: util.Ptr(2024.0), Month: util.Ptr(3.0), Day: util.Ptr(1.0), Second: util.Ptr(1.5)}
	sec, ok := g.ToSeconds(c)
	require.True(t, ok)
	assert.Equal(t, float64(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Unix())+1.5, sec)

	yearOnly, ok := g.ToSeconds(temporal.Coordinate{Year: util.Ptr(2024.0)})
	require.True(t, ok)
	assert.Equal(t, float64(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()), yearOnly)

	_, ok = g.ToSeconds(temporal.Coordinate{Month: util.Ptr(3.0)})
	assert.False(t, ok, "no year")

	fractional, ok := g.ToSeconds(temporal.Coordinate{Year: util.Ptr(2024.0), Month: util.Ptr(3.0), Day: util.Ptr(1.5), Hour: util.Ptr(10.5)})
	require.True(t, ok)
	assert.Equal(t, float64(time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC).Unix()), fractional)

	back := g.FromSeconds(sec)
	assert.Equal(t, 2024.0, *back.Year)
	assert.Equal(t, 3.0, *back.Month)
	assert.Equal(t, 1.0, *back.Day)
	assert.Equal(t, 1.5, *back.Second)
	assert.Equal(t, vocab.Gregorian, back.TRS)

	span := g.Span(-(SecondsPerDay + 2*SecondsPerHour + 5))
	assert.Equal(t, -1.0, *span.Days)
	assert.Equal(t, -2.0, *span.Hours)
	assert.Equal(t, 0.0, *span.Minutes)
	assert.Equal(t, -5.0, *span.Seconds)
}

func TestFixedCalendar(t *testing.T) {
	epoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	cal, err := NewFixedCalendar("Short", epoch, 60, 60, 24, []int{10, 20})
	require.NoError(t, err)

	c := temporal.Coordinate{Year: util.Ptr(2.0), Month: util.Ptr(2.0), Day: util.Ptr(3.0)}
	sec, ok := cal.ToSeconds(c)
	require.True(t, ok)
	assert.Equal(t, float64(epoch.Unix())+42*SecondsPerDay, sec)

	back := cal.FromSeconds(sec + 3*SecondsPerHour)
	assert.Equal(t, 2.0, *back.Year)
	assert.Equal(t, 2.0, *back.Month)
	assert.Equal(t, 3.0, *back.Day)
	assert.Equal(t, 3.0, *back.Hour)
	assert.Equal(t, "Short", back.TRS)

	t.Run("invalid metrics", func(t *testing.T) {
		_, err := NewFixedCalendar("", epoch, 60, 60, 24, []int{30})
		assert.Error(t, err)
		_, err = NewFixedCalendar("X", epoch, 0, 60, 24, []int{30})
		assert.Error(t, err)
		_, err = NewFixedCalendar("X", epoch, 60, 60, 24, nil)
		assert.Error(t, err)
		_, err = NewFixedCalendar("X", epoch, 60, 60, 24, []int{30, -1})
		assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
	})
}

func TestPositionSystem(t *testing.T) {
	r := DefaultRegistry()

	unix, err := r.Position(vocab.UnixTime)
	require.NoError(t, err)
	assert.Equal(t, 86400.0, unix.ToSeconds(86400))
	assert.Equal(t, 10.0, unix.FromSeconds(10))

	geo, err := r.Position(vocab.GeologicTime)
	require.NoError(t, err)
	ma, ok := geo.Nominal(" cretaceous ")
	require.True(t, ok)
	assert.Equal(t, 145.0, ma)
	assert.Less(t, geo.ToSeconds(ma), geo.ToSeconds(0), "reversed axis counts back in time")
	assert.InDelta(t, 145.0, geo.FromSeconds(geo.ToSeconds(145)), 1e-9)

	_, err = NewPositionSystem("X", time.Time{}, "fortnight", 1, false, nil)
	assert.Error(t, err)
	_, err = NewPositionSystem("X", time.Time{}, "day", -1, false, nil)
	assert.Error(t, err)

	p, err := NewPositionSystem("X", time.Time{}, "day", 0, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Scale)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{vocab.Gregorian, vocab.GeologicTime, vocab.GPSTime, vocab.UnixTime}, r.Names())

	_, err := r.Lookup("Martian")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownReferenceSystem))
	assert.True(t, errors.IsConfigurationError(err))

	_, err = r.Calendar(vocab.UnixTime)
	assert.True(t, errors.Is(err, errors.ErrReferenceSystemKind))
	_, err = r.Position(vocab.Gregorian)
	assert.True(t, errors.Is(err, errors.ErrReferenceSystemKind))

	other := NewRegistry()
	other.Register(NewGregorian("Only"))
	r.Replace(other)
	assert.Equal(t, []string{"Only"}, r.Names())
}

func TestRegistryFromConfig(t *testing.T) {
	cfg := &am.Config{
		Resolver: am.ResolverConfig{DefaultReferenceSystem: "Mars"},
		ReferenceSystems: []am.ReferenceSystemConfig{
			{Name: "Mars", Kind: am.KindCalendar, Epoch: "2000-01-01T00:00:00Z", HoursInDay: 25, MonthDays: []int{55, 56}},
			{Name: "BP", Kind: am.KindPosition, Origin: "1950-01-01T00:00:00Z", Unit: "year", Reversed: true,
				Nominals: map[string]float64{"Younger Dryas": 12900}},
		},
	}

	r, err := RegistryFromConfig(cfg)
	require.NoError(t, err)
	assert.Len(t, r.Names(), 6)

	mars, err := r.Calendar("Mars")
	require.NoError(t, err)
	assert.Equal(t, 25, mars.(*FixedCalendar).HoursInDay)
	assert.Equal(t, 60, mars.(*FixedCalendar).SecondsInMinute)

	bp, err := r.Position("BP")
	require.NoError(t, err)
	v, ok := bp.Nominal("younger dryas")
	require.True(t, ok)
	assert.Equal(t, 12900.0, v)

	t.Run("default must be a calendar", func(t *testing.T) {
		bad := *cfg
		bad.Resolver.DefaultReferenceSystem = "BP"
		_, err := RegistryFromConfig(&bad)
		assert.True(t, errors.Is(err, errors.ErrReferenceSystemKind))

		bad.Resolver.DefaultReferenceSystem = "Venus"
		_, err = RegistryFromConfig(&bad)
		assert.True(t, errors.Is(err, errors.ErrUnknownReferenceSystem))
	})

	t.Run("calendar without months", func(t *testing.T) {
		_, err := RegistryFromConfig(&am.Config{ReferenceSystems: []am.ReferenceSystemConfig{{Name: "X", Kind: am.KindCalendar}}})
		assert.Error(t, err)
	})
}

func TestNormalizerInstant(t *testing.T) {
	n := NewNormalizer(DefaultRegistry(), "", nil)
	assert.Equal(t, vocab.Gregorian, n.DefaultTarget())

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("timestamp wins over other encodings", func(t *testing.T) {
		c, err := n.Instant(&temporal.Instant{
			ID:          "t",
			Timestamp:   &ts,
			Description: &temporal.DateTimeDescription{Year: util.Ptr(1999.0), TRS: vocab.Gregorian},
		}, "")
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01T12:00:00", c.String())
	})

	t.Run("same-calendar description keeps sparseness", func(t *testing.T) {
		c, err := n.Instant(&temporal.Instant{
			Description: &temporal.DateTimeDescription{Year: util.Ptr(2024.0), Day: util.Ptr(2.0), TRS: vocab.Gregorian},
		}, vocab.Gregorian)
		require.NoError(t, err)
		assert.Nil(t, c.Month)
		assert.Equal(t, 2.0, *c.Day)
	})

	t.Run("empty description falls through to position", func(t *testing.T) {
		c, err := n.Instant(&temporal.Instant{
			Description: &temporal.DateTimeDescription{TRS: vocab.Gregorian},
			Position:    &temporal.TimePosition{TRS: vocab.UnixTime, Numeric: util.Ptr(86400.0)},
		}, "")
		require.NoError(t, err)
		assert.Equal(t, "1970-01-02T00:00:00", c.String())
	})

	t.Run("geologic nominal", func(t *testing.T) {
		c, err := n.Instant(&temporal.Instant{
			Position: &temporal.TimePosition{TRS: vocab.GeologicTime, Nominal: "Cretaceous"},
		}, "")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, 1950.0-145e6, *c.Year)
		assert.Equal(t, 1.0, *c.Month)
		assert.Equal(t, 1.0, *c.Day)
	})

	t.Run("unknown nominal is incomplete data", func(t *testing.T) {
		c, err := n.Instant(&temporal.Instant{
			Position: &temporal.TimePosition{TRS: vocab.GeologicTime, Nominal: "Gondwanan"},
		}, "")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("no encoding", func(t *testing.T) {
		c, err := n.Instant(&temporal.Instant{ID: "bare"}, "")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("configuration errors", func(t *testing.T) {
		_, err := n.Instant(&temporal.Instant{Position: &temporal.TimePosition{TRS: "Martian", Numeric: util.Ptr(1.0)}}, "")
		assert.True(t, errors.Is(err, errors.ErrUnknownReferenceSystem))

		_, err = n.Instant(&temporal.Instant{Position: &temporal.TimePosition{TRS: vocab.Gregorian, Numeric: util.Ptr(1.0)}}, "")
		assert.True(t, errors.Is(err, errors.ErrReferenceSystemKind))

		_, err = n.Instant(&temporal.Instant{Timestamp: &ts}, vocab.UnixTime)
		assert.True(t, errors.Is(err, errors.ErrReferenceSystemKind), "target must be a calendar")
	})
}

func TestNormalizerAcrossCalendars(t *testing.T) {
	r := DefaultRegistry()
	cal, err := NewFixedCalendar("Decimal", time.Unix(0, 0), 100, 100, 10, []int{100})
	require.NoError(t, err)
	r.Register(cal)
	n := NewNormalizer(r, vocab.Gregorian, nil)

	// Year 1 day 2 of the decimal calendar is 100000 seconds after the epoch.
	c, err := n.Description(&temporal.DateTimeDescription{TRS: "Decimal", Year: util.Ptr(1.0), Day: util.Ptr(2.0)}, "")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-02T03:46:40", c.String())

	sparse, err := n.Description(&temporal.DateTimeDescription{TRS: "Decimal", Day: util.Ptr(2.0)}, "")
	assert.NoError(t, err)
	assert.Nil(t, sparse, "no year, no conversion")

	greg, err := r.Calendar(vocab.Gregorian)
	require.NoError(t, err)
	sec, ok := greg.ToSeconds(*c)
	require.True(t, ok)
	assert.Equal(t, 100000.0, sec)

	t.Run("extents are re-spanned in local units", func(t *testing.T) {
		// One SI day is 8 decimal hours and 64 decimal minutes
		oneDay := temporal.Extent{Days: util.Ptr(1.0)}
		x, err := n.XSDDuration(&oneDay, "Decimal")
		require.NoError(t, err)
		assert.Equal(t, "Decimal", x.TRS)
		assert.Equal(t, 0.0, *x.Days)
		assert.Equal(t, 8.0, *x.Hours)
		assert.Equal(t, 64.0, *x.Minutes)
		assert.Equal(t, 0.0, *x.Seconds)

		d, err := n.Duration(&temporal.Duration{Value: 24, Unit: vocab.UnitHour}, "Decimal")
		require.NoError(t, err)
		assert.Equal(t, 8.0, *d.Hours)

		dd, err := n.DurationDescription(&temporal.DurationDescription{Days: util.Ptr(1.0)}, "Decimal")
		require.NoError(t, err)
		assert.Equal(t, 64.0, *dd.Minutes)

		g, err := n.XSDDuration(&oneDay, vocab.Gregorian)
		require.NoError(t, err)
		assert.Equal(t, 1.0, *g.Days)
		assert.Nil(t, g.Hours, "standard days keep their components")
	})
}

func TestNormalizerExtents(t *testing.T) {
	n := NewNormalizer(DefaultRegistry(), "", nil)

	begin := temporal.CoordinateFromTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), vocab.Gregorian)
	end := temporal.CoordinateFromTime(time.Date(2024, 3, 2, 1, 30, 0, 0, time.UTC), vocab.Gregorian)
	diff, err := n.Difference(begin, end, "")
	require.NoError(t, err)
	assert.Equal(t, 1.0, *diff.Days)
	assert.Equal(t, 1.0, *diff.Hours)
	assert.Equal(t, 30.0, *diff.Minutes)
	assert.Equal(t, 0.0, *diff.Seconds)

	none, err := n.Difference(temporal.Coordinate{}, end, "")
	assert.NoError(t, err)
	assert.Nil(t, none)

	d, err := n.Duration(&temporal.Duration{Value: 90, Unit: vocab.UnitMinute}, "")
	require.NoError(t, err)
	assert.Equal(t, 90.0, *d.Minutes)
	assert.Nil(t, d.Seconds)

	unknown, err := n.Duration(&temporal.Duration{Value: 2, Unit: "fortnight"}, "")
	assert.NoError(t, err)
	assert.Nil(t, unknown)

	dd, err := n.DurationDescription(&temporal.DurationDescription{Weeks: util.Ptr(3.0)}, "")
	require.NoError(t, err)
	assert.Equal(t, 3.0, *dd.Weeks)
	assert.Equal(t, vocab.Gregorian, dd.TRS)

	empty, err := n.DurationDescription(&temporal.DurationDescription{}, "")
	assert.NoError(t, err)
	assert.Nil(t, empty)

	x, err := n.XSDDuration(&temporal.Extent{Days: util.Ptr(1.0)}, "")
	require.NoError(t, err)
	assert.Equal(t, vocab.Gregorian, x.TRS)

	assert.Equal(t, SecondsPerDay+2*SecondsPerHour, ExtentSeconds(temporal.Extent{Days: util.Ptr(1.0), Hours: util.Ptr(2.0)}))
	assert.False(t, math.IsNaN(ExtentSeconds(temporal.Extent{})))
}
