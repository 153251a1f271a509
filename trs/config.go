package trs

import (
	"time"

	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/errors"
)

// Metric defaults for calendars declared without them.
const (
	defaultSecondsInMinute = 60
	defaultMinutesInHour   = 60
	defaultHoursInDay      = 24
)

// RegistryFromConfig builds the built-in systems plus every system declared
// under [[reference_systems]]. A declared system replaces a built-in of the
// same name. The default reference system must resolve to a calendar.
func RegistryFromConfig(cfg *am.Config) (*Registry, error) {
	r := DefaultRegistry()
	for _, rs := range cfg.ReferenceSystems {
		s, err := systemFromConfig(rs)
		if err != nil {
			return nil, errors.Wrapf(err, "reference system %s", rs.Name)
		}
		r.Register(s)
	}

	if name := cfg.Resolver.DefaultReferenceSystem; name != "" {
		if _, err := r.Calendar(name); err != nil {
			return nil, errors.Wrap(err, "resolver.default_reference_system")
		}
	}
	return r, nil
}

func systemFromConfig(rs am.ReferenceSystemConfig) (System, error) {
	kind, ok := ParseKind(rs.Kind)
	if !ok {
		return nil, errors.NewInvalidRequestError("unknown kind %q", rs.Kind)
	}

	if kind == KindPosition {
		origin, err := parseInstant(rs.Origin)
		if err != nil {
			return nil, err
		}
		unit := rs.Unit
		if unit == "" {
			unit = "second"
		}
		return NewPositionSystem(rs.Name, origin, unit, rs.Scale, rs.Reversed, rs.Nominals)
	}

	epoch, err := parseInstant(rs.Epoch)
	if err != nil {
		return nil, err
	}
	return NewFixedCalendar(rs.Name, epoch,
		orDefault(rs.SecondsInMinute, defaultSecondsInMinute),
		orDefault(rs.MinutesInHour, defaultMinutesInHour),
		orDefault(rs.HoursInDay, defaultHoursInDay),
		rs.MonthDays,
	)
}

// parseInstant reads an RFC 3339 anchor; empty means the Unix epoch.
func parseInstant(s string) (time.Time, error) {
	if s == "" {
		return time.Unix(0, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse anchor %q", s)
	}
	return t, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
