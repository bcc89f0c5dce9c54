// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

// groupFilterType names the 19 precomputed GROUP predicate-shapes,
// the GROUP analogue of filterShape. Each shape is a
// fixed combination of predicate fields for which counts are
// maintained incrementally rather than recomputed by scan.
type groupFilterType int

const (
	gfNone groupFilterType = iota
	gfSex
	gfStatus
	gfSexStatus
	gfJoined
	gfJoinedSex
	gfJoinedStatus
	gfInterests
	gfJoinedInterests
	gfBirth
	gfCountry
	gfCity
	gfBirthStatus
	gfCountryBirth
	gfBirthInterests
	gfSexBirth
	gfCityBirth
	gfCountryJoined
	gfCityJoined
	numGroupFilterTypes
)

// groupShape names the 9 precomputed grouping-key shapes a "keys="
// parameter can select.
type groupShape int

const (
	gsSex groupShape = iota
	gsStatus
	gsCity
	gsCountry
	gsInterests
	gsSexCity
	gsSexCountry
	gsStatusCity
	gsStatusCountry
	numGroupShapes
)

// groupShapeByKeys maps the canonical sorted set of "keys=" names to
// the grouping shape it selects.
var groupShapeByKeys = map[string]groupShape{
	keySet("sex"):             gsSex,
	keySet("status"):          gsStatus,
	keySet("city"):            gsCity,
	keySet("country"):         gsCountry,
	keySet("interests"):       gsInterests,
	keySet("sex", "city"):     gsSexCity,
	keySet("sex", "country"):  gsSexCountry,
	keySet("status", "city"):  gsStatusCity,
	keySet("status", "country"): gsStatusCountry,
}

// gkey is a 2-int32 compound key; the second component is 0 when the
// filter/grouping shape only needs one.
type gkey struct{ a, b int32 }

// groupFilterBucket holds, for one filter-shape/filter-key pair, the
// incremental count-by-grouping-key map for every grouping shape.
type groupFilterBucket struct {
	shapes [numGroupShapes]map[gkey]int32
}

func newGroupFilterBucket() *groupFilterBucket {
	b := &groupFilterBucket{}
	for i := range b.shapes {
		b.shapes[i] = make(map[gkey]int32)
	}
	return b
}

// GroupIndex is the GROUP analogue of FilterIndex: a 19-shape x
// 9-shape compound index of running counts, maintained incrementally
// on every insert/patch rather than recomputed per query.
type GroupIndex struct {
	data [numGroupFilterTypes]map[gkey]*groupFilterBucket
}

// NewGroupIndex returns an empty compound group index.
func NewGroupIndex() *GroupIndex {
	gi := &GroupIndex{}
	for i := range gi.data {
		gi.data[i] = make(map[gkey]*groupFilterBucket)
	}
	return gi
}

func (gi *GroupIndex) bucketFor(ft groupFilterType, key gkey) *groupFilterBucket {
	b, ok := gi.data[ft][key]
	if !ok {
		b = newGroupFilterBucket()
		gi.data[ft][key] = b
	}
	return b
}

// addAccount registers acc's current field values into every
// filter-shape/grouping-shape count it contributes to.
func (gi *GroupIndex) addAccount(st *Store, acc *Account) {
	gi.updateAccount(acc, 1)
}

// removeAccount undoes addAccount for acc's current (pre-patch) field
// values.
func (gi *GroupIndex) removeAccount(st *Store, acc *Account) {
	gi.updateAccount(acc, -1)
}

// updateAccount applies incr to every (filterType, filterKey) bucket
// acc belongs to. The filter-key construction mirrors getFilterType
// below exactly: every branch the planner can dispatch to must have a
// matching update here, or GROUP's fast path would read stale counts.
func (gi *GroupIndex) updateAccount(acc *Account, incr int32) {
	joined := yearFromSeconds(acc.Joined)
	birth := birthYear(acc.Birth)

	gi.updateFilter(gfNone, gkey{}, acc, incr)
	gi.updateFilter(gfSex, gkey{acc.Sex, 0}, acc, incr)
	gi.updateFilter(gfStatus, gkey{acc.Status, 0}, acc, incr)
	gi.updateFilter(gfSexStatus, gkey{acc.Sex, acc.Status}, acc, incr)
	gi.updateFilter(gfJoined, gkey{joined, 0}, acc, incr)
	gi.updateFilter(gfJoinedSex, gkey{joined, acc.Sex}, acc, incr)
	gi.updateFilter(gfJoinedStatus, gkey{joined, acc.Status}, acc, incr)
	for _, interest := range acc.Interests.ToSlice() {
		in := int32(interest)
		gi.updateFilter(gfInterests, gkey{in, 0}, acc, incr)
		gi.updateFilter(gfJoinedInterests, gkey{joined, in}, acc, incr)
		gi.updateFilter(gfBirthInterests, gkey{birth, in}, acc, incr)
	}
	gi.updateFilter(gfBirth, gkey{birth, 0}, acc, incr)
	gi.updateFilter(gfCountry, gkey{acc.Country, 0}, acc, incr)
	gi.updateFilter(gfCity, gkey{acc.City, 0}, acc, incr)
	gi.updateFilter(gfBirthStatus, gkey{birth, acc.Status}, acc, incr)
	gi.updateFilter(gfCountryBirth, gkey{acc.Country, birth}, acc, incr)
	gi.updateFilter(gfSexBirth, gkey{acc.Sex, birth}, acc, incr)
	gi.updateFilter(gfCityBirth, gkey{acc.City, birth}, acc, incr)
	gi.updateFilter(gfCountryJoined, gkey{acc.Country, joined}, acc, incr)
	gi.updateFilter(gfCityJoined, gkey{acc.City, joined}, acc, incr)
}

// updateFilter adjusts one filter bucket's grouping counts for acc:
// the Interests grouping shape gets one increment per interest acc
// holds, every other grouping shape gets exactly one increment for the
// whole account (a "separate record with an empty interest", since
// those shapes don't multiply by interest count).
func (gi *GroupIndex) updateFilter(ft groupFilterType, key gkey, acc *Account, incr int32) {
	b := gi.bucketFor(ft, key)

	for _, interest := range acc.Interests.ToSlice() {
		gk := makeGroupKeyFromAccount(gsInterests, acc, int32(interest))
		b.shapes[gsInterests][gk] += incr
	}
	for gs := groupShape(0); gs < numGroupShapes; gs++ {
		if gs == gsInterests {
			continue
		}
		gk := makeGroupKeyFromAccount(gs, acc, 0)
		b.shapes[gs][gk] += incr
	}
}

// GroupKey is the fully-decoded grouping tuple a result row is bucketed
// under; fields irrelevant to the active grouping shape are left zero.
type GroupKey struct {
	Sex, Status, City, Country, Interests int32
}

// lookup returns the precomputed count-by-GroupKey map for m's active
// filter predicates and grouping keys, or (nil, false) if no
// precomputed shape matches (the caller falls back to a scan).
func (gi *GroupIndex) lookup(m *groupMatcher) (map[GroupKey]int32, bool) {
	ft, ok := getFilterType(m)
	if !ok {
		return nil, false
	}
	gs, ok := groupShapeByKeys[keySet(m.Keys...)]
	if !ok {
		return nil, false
	}
	b, ok := gi.data[ft][makeFilterKey(m, ft)]
	if !ok {
		return map[GroupKey]int32{}, true
	}
	out := make(map[GroupKey]int32, len(b.shapes[gs]))
	for k, v := range b.shapes[gs] {
		if v > 0 {
			out[makeGroupKeyFromKey(k, gs)] = v
		}
	}
	return out, true
}

func makeFilterKey(m *groupMatcher, ft groupFilterType) gkey {
	switch ft {
	case gfNone:
		return gkey{}
	case gfSex:
		return gkey{m.Sex, 0}
	case gfStatus:
		return gkey{m.Status, 0}
	case gfSexStatus:
		return gkey{m.Sex, m.Status}
	case gfJoined:
		return gkey{m.Joined, 0}
	case gfJoinedSex:
		return gkey{m.Joined, m.Sex}
	case gfJoinedStatus:
		return gkey{m.Joined, m.Status}
	case gfInterests:
		return gkey{m.Interest, 0}
	case gfJoinedInterests:
		return gkey{m.Joined, m.Interest}
	case gfBirth:
		return gkey{m.Birth, 0}
	case gfCountry:
		return gkey{m.Country, 0}
	case gfCity:
		return gkey{m.City, 0}
	case gfBirthStatus:
		return gkey{m.Birth, m.Status}
	case gfCountryBirth:
		return gkey{m.Country, m.Birth}
	case gfBirthInterests:
		return gkey{m.Birth, m.Interest}
	case gfSexBirth:
		return gkey{m.Sex, m.Birth}
	case gfCityBirth:
		return gkey{m.City, m.Birth}
	case gfCountryJoined:
		return gkey{m.Country, m.Joined}
	case gfCityJoined:
		return gkey{m.City, m.Joined}
	default:
		return gkey{}
	}
}

func makeGroupKeyFromAccount(gs groupShape, acc *Account, interest int32) gkey {
	switch gs {
	case gsSex:
		return gkey{acc.Sex, 0}
	case gsStatus:
		return gkey{acc.Status, 0}
	case gsCity:
		return gkey{acc.City, 0}
	case gsCountry:
		return gkey{acc.Country, 0}
	case gsInterests:
		return gkey{interest, 0}
	case gsSexCity:
		return gkey{acc.Sex, acc.City}
	case gsSexCountry:
		return gkey{acc.Sex, acc.Country}
	case gsStatusCity:
		return gkey{acc.Status, acc.City}
	case gsStatusCountry:
		return gkey{acc.Status, acc.Country}
	default:
		return gkey{}
	}
}

func makeGroupKeyFromKey(k gkey, gs groupShape) GroupKey {
	switch gs {
	case gsSex:
		return GroupKey{Sex: k.a}
	case gsStatus:
		return GroupKey{Status: k.a}
	case gsCity:
		return GroupKey{City: k.a}
	case gsCountry:
		return GroupKey{Country: k.a}
	case gsInterests:
		return GroupKey{Interests: k.a}
	case gsSexCity:
		return GroupKey{Sex: k.a, City: k.b}
	case gsSexCountry:
		return GroupKey{Sex: k.a, Country: k.b}
	case gsStatusCity:
		return GroupKey{Status: k.a, City: k.b}
	case gsStatusCountry:
		return GroupKey{Status: k.a, Country: k.b}
	default:
		return GroupKey{}
	}
}

// getFilterType dispatches m's active predicates to one of the 19
// precomputed shapes, as an explicit ordered chain rather than a
// derived lookup: several shapes could structurally match the same
// predicate set once "zero means absent" is taken into account, and
// this order is the one the index was built to serve. Do not reorder
// without re-deriving every branch.
func getFilterType(m *groupMatcher) (groupFilterType, bool) {
	switch {
	case m.Sex == 0 && m.Status == 0 && m.City == 0 && m.Country == 0 && m.Birth == 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfNone, true
	case m.Sex != 0 && m.Status == 0 && m.City == 0 && m.Country == 0 && m.Birth == 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfSex, true
	case m.Sex == 0 && m.Status != 0 && m.City == 0 && m.Country == 0 && m.Birth == 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfStatus, true
	case m.Sex != 0 && m.Status != 0 && m.City == 0 && m.Country == 0 && m.Birth == 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfSexStatus, true
	case m.Sex == 0 && m.Status == 0 && m.City == 0 && m.Country == 0 && m.Birth == 0 && m.Joined != 0 && m.Interest == 0 && m.Like == 0:
		return gfJoined, true
	case m.Sex != 0 && m.Status == 0 && m.City == 0 && m.Country == 0 && m.Birth == 0 && m.Joined != 0 && m.Interest == 0 && m.Like == 0:
		return gfJoinedSex, true
	case m.Sex == 0 && m.Status != 0 && m.City == 0 && m.Country == 0 && m.Birth == 0 && m.Joined != 0 && m.Interest == 0 && m.Like == 0:
		return gfJoinedStatus, true
	case m.Sex == 0 && m.Status == 0 && m.City == 0 && m.Country == 0 && m.Birth == 0 && m.Joined == 0 && m.Interest != 0 && m.Like == 0:
		return gfInterests, true
	case m.Sex == 0 && m.Status == 0 && m.City == 0 && m.Country == 0 && m.Birth == 0 && m.Joined != 0 && m.Interest != 0 && m.Like == 0:
		return gfJoinedInterests, true
	case m.Sex == 0 && m.Status == 0 && m.City == 0 && m.Country == 0 && m.Birth != 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfBirth, true
	case m.Sex == 0 && m.Status == 0 && m.City == 0 && m.Country != 0 && m.Birth == 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfCountry, true
	case m.Sex == 0 && m.Status == 0 && m.City != 0 && m.Country == 0 && m.Birth == 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfCity, true
	case m.Sex == 0 && m.Status != 0 && m.City == 0 && m.Country == 0 && m.Birth != 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfBirthStatus, true
	case m.Sex == 0 && m.Status == 0 && m.City == 0 && m.Country != 0 && m.Birth != 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfCountryBirth, true
	case m.Sex == 0 && m.Status == 0 && m.City == 0 && m.Country == 0 && m.Birth != 0 && m.Joined == 0 && m.Interest != 0 && m.Like == 0:
		return gfBirthInterests, true
	case m.Sex != 0 && m.Status == 0 && m.City == 0 && m.Country == 0 && m.Birth != 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfSexBirth, true
	case m.Sex == 0 && m.Status == 0 && m.City != 0 && m.Country == 0 && m.Birth != 0 && m.Joined == 0 && m.Interest == 0 && m.Like == 0:
		return gfCityBirth, true
	case m.Sex == 0 && m.Status == 0 && m.City == 0 && m.Country != 0 && m.Birth == 0 && m.Joined != 0 && m.Interest == 0 && m.Like == 0:
		return gfCountryJoined, true
	case m.Sex == 0 && m.Status == 0 && m.City != 0 && m.Country == 0 && m.Birth == 0 && m.Joined != 0 && m.Interest == 0 && m.Like == 0:
		return gfCityJoined, true
	default:
		return 0, false
	}
}
