package resolve

import (
	"github.com/teranos/chronos/temporal"
)

// ResolveExtent returns the duration of interval id on target, trying in
// order: xsd:duration, duration description, numeric duration with unit,
// and the difference between the resolved beginning and end.
func (r *Resolver) ResolveExtent(id, target string) (*temporal.Extent, error) {
	iv, err := r.extractor.Interval(id)
	if err != nil {
		return nil, err
	}

	if iv.XSDDuration != nil {
		return r.normalizer.XSDDuration(iv.XSDDuration, target)
	}
	if iv.DurationDescription != nil {
		e, err := r.normalizer.DurationDescription(iv.DurationDescription, target)
		if err != nil || e != nil {
			return e, err
		}
	}
	if iv.Duration != nil {
		e, err := r.normalizer.Duration(iv.Duration, target)
		if err != nil || e != nil {
			return e, err
		}
	}

	begin, err := r.ResolveBeginning(id, target)
	if err != nil || begin == nil {
		return nil, err
	}
	end, err := r.ResolveEnd(id, target)
	if err != nil || end == nil {
		return nil, err
	}
	return r.normalizer.Difference(*begin, *end, target)
}
