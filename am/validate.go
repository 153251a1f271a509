package am

import (
	"time"

	"github.com/teranos/chronos/allen"
	"github.com/teranos/chronos/errors"
)

// Reference system kinds accepted under [[reference_systems]]
const (
	KindCalendar = "calendar"
	KindPosition = "position"
)

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Validator.Workers < 0 {
		return errors.Newf("validator.workers must be >= 0, got %d", c.Validator.Workers)
	}
	for _, name := range c.Validator.Rules {
		if _, ok := allen.Parse(name); !ok {
			return errors.WithHint(
				errors.Newf("validator.rules: unknown relation %q", name),
				"use OWL-Time property names such as intervalBefore or time:before",
			)
		}
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	seen := make(map[string]bool, len(c.ReferenceSystems))
	for i, rs := range c.ReferenceSystems {
		if rs.Name == "" {
			return errors.Newf("reference_systems[%d].name is required", i)
		}
		if seen[rs.Name] {
			return errors.Newf("reference_systems[%d]: duplicate name %q", i, rs.Name)
		}
		seen[rs.Name] = true

		if err := rs.validate(); err != nil {
			return errors.Wrapf(err, "reference_systems[%d] (%s)", i, rs.Name)
		}
	}
	return nil
}

func (rs ReferenceSystemConfig) validate() error {
	switch rs.Kind {
	case KindPosition:
		if rs.Scale < 0 {
			return errors.Newf("scale must be >= 0, got %g", rs.Scale)
		}
		if rs.Origin != "" {
			if _, err := time.Parse(time.RFC3339, rs.Origin); err != nil {
				return errors.Wrap(err, "origin must be an RFC 3339 timestamp")
			}
		}
	case KindCalendar:
		if rs.Epoch != "" {
			if _, err := time.Parse(time.RFC3339, rs.Epoch); err != nil {
				return errors.Wrap(err, "epoch must be an RFC 3339 timestamp")
			}
		}
		if rs.SecondsInMinute < 0 || rs.MinutesInHour < 0 || rs.HoursInDay < 0 {
			return errors.New("calendar metrics must be >= 0")
		}
		for j, days := range rs.MonthDays {
			if days <= 0 {
				return errors.Newf("month_days[%d] must be > 0, got %d", j, days)
			}
		}
	default:
		return errors.Newf("kind must be %q or %q, got %q", KindCalendar, KindPosition, rs.Kind)
	}
	return nil
}
