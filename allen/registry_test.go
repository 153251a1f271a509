package allen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/chronos/vocab"
)

func TestAllKinds(t *testing.T) {
	kinds := All()
	require.Len(t, kinds, 19)
	assert.Equal(t, Before, kinds[0])
	assert.Equal(t, NotDisjoint, kinds[len(kinds)-1])

	seen := make(map[string]bool)
	for _, k := range kinds {
		e := registry[k]
		assert.NotEmpty(t, e.name, "kind %d has no registry entry", k)
		assert.NotZero(t, e.domain, "%s has no domain", k)
		assert.True(t, e.inverse.Valid(), "%s has no inverse", k)
		assert.NotZero(t, e.basics, "%s has no basic relations", k)
		assert.False(t, seen[e.name], "duplicate name %s", e.name)
		seen[e.name] = true
	}
}

func TestNamesAndIRIs(t *testing.T) {
	assert.Equal(t, "time:intervalBefore", IntervalBefore.String())
	assert.Equal(t, "intervalBefore", IntervalBefore.LocalName())
	assert.Equal(t, vocab.IntervalBefore, IntervalBefore.IRI())
	assert.Equal(t, vocab.HasInside, HasInside.IRI())
	assert.Equal(t, vocab.Before, Before.IRI())

	assert.Equal(t, "time:unknown", Unknown.String())
	assert.Empty(t, Unknown.IRI())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"intervalMeets", IntervalMeets, true},
		{"time:intervalMeets", IntervalMeets, true},
		{vocab.IntervalMeets, IntervalMeets, true},
		{"  notDisjoint ", NotDisjoint, true},
		{"before", Before, true},
		{"intervalSometime", Unknown, false},
		{"", Unknown, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.ok, ok, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}

	_, ok := FromIRI("intervalMeets")
	assert.False(t, ok, "FromIRI requires the full namespace")
	k, ok := FromIRI(vocab.IntervalIn)
	assert.True(t, ok)
	assert.Equal(t, IntervalIn, k)
}

func TestDomains(t *testing.T) {
	assert.Equal(t, InstantDomain, Before.Domain())
	assert.Equal(t, InstantDomain, After.Domain())
	for _, k := range All()[2:] {
		assert.Equal(t, IntervalDomain, k.Domain(), "%s", k)
	}
	assert.Equal(t, "instants", InstantDomain.Noun())
	assert.Equal(t, "intervals", IntervalDomain.Noun())
	assert.Equal(t, vocab.ClassInterval, IntervalDomain.ClassIRI())
}

func TestInverses(t *testing.T) {
	pairs := map[Kind]Kind{
		Before:           After,
		IntervalBefore:   IntervalAfter,
		IntervalMeets:    IntervalMetBy,
		IntervalOverlaps: IntervalOverlappedBy,
		IntervalStarts:   IntervalStartedBy,
		IntervalDuring:   IntervalContains,
		IntervalFinishes: IntervalFinishedBy,
		IntervalIn:       HasInside,
		IntervalEquals:   IntervalEquals,
		IntervalDisjoint: IntervalDisjoint,
		NotDisjoint:      NotDisjoint,
	}
	for k, inv := range pairs {
		assert.Equal(t, inv, k.Inverse(), "%s", k)
		assert.Equal(t, k, inv.Inverse(), "%s", inv)
	}

	for _, k := range All() {
		assert.Equal(t, k, k.Inverse().Inverse(), "inverse of inverse of %s", k)
	}

	var symmetric []Kind
	for _, k := range All() {
		if k.Symmetric() {
			symmetric = append(symmetric, k)
		}
	}
	assert.Equal(t, []Kind{IntervalDisjoint, IntervalEquals, NotDisjoint}, symmetric)
}

func TestInverseMirrorsBasics(t *testing.T) {
	mirror := map[Basic]Basic{
		BasicBefore:       BasicAfter,
		BasicAfter:        BasicBefore,
		BasicMeets:        BasicMetBy,
		BasicMetBy:        BasicMeets,
		BasicOverlaps:     BasicOverlappedBy,
		BasicOverlappedBy: BasicOverlaps,
		BasicStarts:       BasicStartedBy,
		BasicStartedBy:    BasicStarts,
		BasicDuring:       BasicContains,
		BasicContains:     BasicDuring,
		BasicFinishes:     BasicFinishedBy,
		BasicFinishedBy:   BasicFinishes,
		BasicEquals:       BasicEquals,
	}
	for _, k := range All() {
		var mirrored BasicSet
		for b := Basic(0); b < basicCount; b++ {
			if k.Basics().Has(b) {
				mirrored |= 1 << mirror[b]
			}
		}
		assert.Equal(t, k.Inverse().Basics(), mirrored, "%s", k)
	}
}

func TestCompatibilityIsSymmetric(t *testing.T) {
	for _, a := range All() {
		assert.True(t, a.CompatibleWith(a), "%s must be compatible with itself", a)
		for _, b := range All() {
			assert.Equal(t, a.CompatibleWith(b), b.CompatibleWith(a),
				"compatibility of %s and %s is not symmetric", a, b)
		}
	}
}

func TestCompatibilityMatchesBasicRelations(t *testing.T) {
	for _, a := range All() {
		for _, b := range All() {
			want := a.Basics().Intersects(b.Basics())
			assert.Equal(t, want, a.CompatibleWith(b), "%s vs %s", a, b)
		}
	}
}

func TestCompatibilityFixtures(t *testing.T) {
	t.Run("disjoint umbrella", func(t *testing.T) {
		assert.True(t, IntervalBefore.Clashes(NotDisjoint))
		assert.True(t, NotDisjoint.Clashes(IntervalBefore))
		assert.False(t, IntervalBefore.Clashes(IntervalDisjoint))
		assert.False(t, IntervalDisjoint.Clashes(After))
	})

	t.Run("notDisjoint umbrella", func(t *testing.T) {
		assert.False(t, NotDisjoint.Clashes(IntervalOverlaps))
		assert.False(t, NotDisjoint.Clashes(HasInside))
		assert.True(t, NotDisjoint.Clashes(IntervalMeets))
	})

	t.Run("meets stands alone", func(t *testing.T) {
		assert.Equal(t, []Kind{IntervalMeets}, IntervalMeets.Compatible().Kinds())
		assert.Equal(t, []Kind{IntervalMetBy}, IntervalMetBy.Compatible().Kinds())
	})

	t.Run("contains against during", func(t *testing.T) {
		assert.True(t, IntervalContains.Clashes(IntervalDuring))
		assert.True(t, IntervalIn.Clashes(HasInside))
	})

	t.Run("unknown kinds never clash", func(t *testing.T) {
		assert.False(t, Unknown.Clashes(IntervalBefore))
		assert.False(t, IntervalBefore.Clashes(Unknown))
	})
}

func TestHierarchy(t *testing.T) {
	assert.ElementsMatch(t, []Kind{Before, IntervalDisjoint}, IntervalBefore.Parents())
	assert.Empty(t, IntervalMeets.Parents())

	assert.True(t, IntervalDuring.IsSubKindOf(IntervalIn))
	assert.True(t, IntervalDuring.IsSubKindOf(NotDisjoint))
	assert.True(t, IntervalContains.IsSubKindOf(NotDisjoint))
	assert.False(t, IntervalDuring.IsSubKindOf(HasInside))
	assert.False(t, NotDisjoint.IsSubKindOf(NotDisjoint))

	for _, k := range All() {
		for _, p := range k.Ancestors().Kinds() {
			assert.True(t, k.CompatibleWith(p), "%s must be compatible with its ancestor %s", k, p)
			assert.Equal(t, p.Basics()|k.Basics(), p.Basics(),
				"basic relations of %s must be a subset of %s", k, p)
		}
	}
}

func TestSet(t *testing.T) {
	s := NewSet(NotDisjoint, Before)
	assert.True(t, s.Has(Before))
	assert.False(t, s.Has(After))
	assert.False(t, s.Has(Unknown))
	assert.Equal(t, []Kind{Before, NotDisjoint}, s.Kinds())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 3, s.With(After).Len())
	assert.Equal(t, 9, NotDisjoint.Basics().Len())
}
