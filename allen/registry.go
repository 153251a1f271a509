package allen

// Basic is one of Allen's thirteen jointly exhaustive, pairwise disjoint
// interval relations.
type Basic uint8

const (
	BasicBefore Basic = iota
	BasicAfter
	BasicMeets
	BasicMetBy
	BasicOverlaps
	BasicOverlappedBy
	BasicStarts
	BasicStartedBy
	BasicDuring
	BasicContains
	BasicFinishes
	BasicFinishedBy
	BasicEquals

	basicCount
)

// BasicSet is a set of basic relations.
type BasicSet uint16

func basics(bs ...Basic) BasicSet {
	var s BasicSet
	for _, b := range bs {
		s |= 1 << b
	}
	return s
}

// Has reports whether b is in the set.
func (s BasicSet) Has(b Basic) bool { return s&(1<<b) != 0 }

// Intersects reports whether s and o share a basic relation.
func (s BasicSet) Intersects(o BasicSet) bool { return s&o != 0 }

// Len returns the number of basic relations in the set.
func (s BasicSet) Len() int {
	n := 0
	for b := Basic(0); b < basicCount; b++ {
		if s.Has(b) {
			n++
		}
	}
	return n
}

// Set is a set of relation kinds.
type Set uint32

// NewSet builds a set from kinds.
func NewSet(kinds ...Kind) Set {
	return Set(0).With(kinds...)
}

// With returns s plus kinds.
func (s Set) With(kinds ...Kind) Set {
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool { return k.Valid() && s&(1<<k) != 0 }

// Kinds returns the members of s in registry order.
func (s Set) Kinds() []Kind {
	var out []Kind
	for _, k := range All() {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of kinds in the set.
func (s Set) Len() int { return len(s.Kinds()) }

type entry struct {
	name       string
	domain     Domain
	inverse    Kind
	parents    Set
	compatible Set
	basics     BasicSet
}

// registry is indexed by Kind. Compatible sets are symmetric and every kind is
// compatible with itself; registry_test.go checks both against the basic
// relation decomposition.
var registry = [kindCount]entry{
	Before: {
		name:       "before",
		domain:     InstantDomain,
		inverse:    After,
		compatible: NewSet(Before, IntervalBefore, IntervalDisjoint),
		basics:     basics(BasicBefore),
	},
	After: {
		name:       "after",
		domain:     InstantDomain,
		inverse:    Before,
		compatible: NewSet(After, IntervalAfter, IntervalDisjoint),
		basics:     basics(BasicAfter),
	},
	IntervalAfter: {
		name:       "intervalAfter",
		domain:     IntervalDomain,
		inverse:    IntervalBefore,
		parents:    NewSet(After, IntervalDisjoint),
		compatible: NewSet(IntervalAfter, After, IntervalDisjoint),
		basics:     basics(BasicAfter),
	},
	IntervalBefore: {
		name:       "intervalBefore",
		domain:     IntervalDomain,
		inverse:    IntervalAfter,
		parents:    NewSet(Before, IntervalDisjoint),
		compatible: NewSet(IntervalBefore, Before, IntervalDisjoint),
		basics:     basics(BasicBefore),
	},
	IntervalContains: {
		name:       "intervalContains",
		domain:     IntervalDomain,
		inverse:    IntervalDuring,
		parents:    NewSet(HasInside),
		compatible: NewSet(IntervalContains, HasInside, NotDisjoint),
		basics:     basics(BasicContains),
	},
	IntervalDisjoint: {
		name:       "intervalDisjoint",
		domain:     IntervalDomain,
		inverse:    IntervalDisjoint,
		compatible: NewSet(IntervalDisjoint, IntervalBefore, IntervalAfter, Before, After),
		basics:     basics(BasicBefore, BasicAfter),
	},
	IntervalDuring: {
		name:       "intervalDuring",
		domain:     IntervalDomain,
		inverse:    IntervalContains,
		parents:    NewSet(IntervalIn),
		compatible: NewSet(IntervalDuring, IntervalIn, NotDisjoint),
		basics:     basics(BasicDuring),
	},
	IntervalEquals: {
		name:       "intervalEquals",
		domain:     IntervalDomain,
		inverse:    IntervalEquals,
		parents:    NewSet(NotDisjoint),
		compatible: NewSet(IntervalEquals, NotDisjoint),
		basics:     basics(BasicEquals),
	},
	IntervalFinishedBy: {
		name:       "intervalFinishedBy",
		domain:     IntervalDomain,
		inverse:    IntervalFinishes,
		parents:    NewSet(HasInside),
		compatible: NewSet(IntervalFinishedBy, HasInside, NotDisjoint),
		basics:     basics(BasicFinishedBy),
	},
	IntervalFinishes: {
		name:       "intervalFinishes",
		domain:     IntervalDomain,
		inverse:    IntervalFinishedBy,
		parents:    NewSet(IntervalIn),
		compatible: NewSet(IntervalFinishes, IntervalIn, NotDisjoint),
		basics:     basics(BasicFinishes),
	},
	IntervalIn: {
		name:       "intervalIn",
		domain:     IntervalDomain,
		inverse:    HasInside,
		parents:    NewSet(NotDisjoint),
		compatible: NewSet(IntervalIn, IntervalDuring, IntervalStarts, IntervalFinishes, NotDisjoint),
		basics:     basics(BasicDuring, BasicStarts, BasicFinishes),
	},
	IntervalMeets: {
		name:       "intervalMeets",
		domain:     IntervalDomain,
		inverse:    IntervalMetBy,
		compatible: NewSet(IntervalMeets),
		basics:     basics(BasicMeets),
	},
	IntervalMetBy: {
		name:       "intervalMetBy",
		domain:     IntervalDomain,
		inverse:    IntervalMeets,
		compatible: NewSet(IntervalMetBy),
		basics:     basics(BasicMetBy),
	},
	IntervalOverlappedBy: {
		name:       "intervalOverlappedBy",
		domain:     IntervalDomain,
		inverse:    IntervalOverlaps,
		parents:    NewSet(NotDisjoint),
		compatible: NewSet(IntervalOverlappedBy, NotDisjoint),
		basics:     basics(BasicOverlappedBy),
	},
	IntervalOverlaps: {
		name:       "intervalOverlaps",
		domain:     IntervalDomain,
		inverse:    IntervalOverlappedBy,
		parents:    NewSet(NotDisjoint),
		compatible: NewSet(IntervalOverlaps, NotDisjoint),
		basics:     basics(BasicOverlaps),
	},
	IntervalStartedBy: {
		name:       "intervalStartedBy",
		domain:     IntervalDomain,
		inverse:    IntervalStarts,
		parents:    NewSet(HasInside),
		compatible: NewSet(IntervalStartedBy, HasInside, NotDisjoint),
		basics:     basics(BasicStartedBy),
	},
	IntervalStarts: {
		name:       "intervalStarts",
		domain:     IntervalDomain,
		inverse:    IntervalStartedBy,
		parents:    NewSet(IntervalIn),
		compatible: NewSet(IntervalStarts, IntervalIn, NotDisjoint),
		basics:     basics(BasicStarts),
	},
	HasInside: {
		name:       "hasInside",
		domain:     IntervalDomain,
		inverse:    IntervalIn,
		parents:    NewSet(NotDisjoint),
		compatible: NewSet(HasInside, IntervalContains, IntervalStartedBy, IntervalFinishedBy, NotDisjoint),
		basics:     basics(BasicContains, BasicStartedBy, BasicFinishedBy),
	},
	NotDisjoint: {
		name:    "notDisjoint",
		domain:  IntervalDomain,
		inverse: NotDisjoint,
		compatible: NewSet(
			NotDisjoint,
			IntervalContains, IntervalDuring, IntervalEquals,
			IntervalFinishedBy, IntervalFinishes, IntervalIn,
			IntervalOverlappedBy, IntervalOverlaps,
			IntervalStartedBy, IntervalStarts, HasInside,
		),
		basics: basics(
			BasicOverlaps, BasicOverlappedBy,
			BasicStarts, BasicStartedBy,
			BasicDuring, BasicContains,
			BasicFinishes, BasicFinishedBy,
			BasicEquals,
		),
	},
}
