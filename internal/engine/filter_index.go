// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

// keepTop and keepTopEmail cap each compound-filter posting list to its
// newest ids: since FILTER always reads descending by id with a
// user-supplied limit, only the largest ids in a bucket can ever be
// returned, so older (smaller) ids are safe to drop once a bucket
// grows past the cap.
const (
	keepTop      = 500
	keepTopEmail = 5000
)

// filterShape names the 19 precomputed compound predicate-key shapes
// FILTER's planner recognizes.
type filterShape int

const (
	shapeSexCountryNull filterShape = iota
	shapeCountryNull
	shapeSexCityNull
	shapeCityNull
	shapeEmailLt
	shapeEmailGt
	shapeEmailLtSex
	shapeEmailGtSex
	shapeCountryNullPhoneCode
	shapeCityNullPhoneCode
	shapeFnameCountryNullSex
	shapeFnameCityNullSex
	shapeFnameSex
	shapeFnameCountryNull
	shapeFnameCityNull
	shapeEmailLtCityNull
	shapeEmailGtCityNull
	shapeEmailLtCountryNullSex
	shapeEmailGtCountryNullSex
	numFilterShapes
)

// filterShapeByKeys maps the canonical sorted set of active predicate
// keys to the shape it matches, if any: a canonical sorted key-set
// identifies the predicate shape.
var filterShapeByKeys = map[string]filterShape{
	keySet("sex_eq", "country_null"):                       shapeSexCountryNull,
	keySet("country_null"):                                 shapeCountryNull,
	keySet("sex_eq", "city_null"):                          shapeSexCityNull,
	keySet("city_null"):                                    shapeCityNull,
	keySet("email_lt"):                                     shapeEmailLt,
	keySet("email_gt"):                                     shapeEmailGt,
	keySet("email_lt", "sex_eq"):                           shapeEmailLtSex,
	keySet("email_gt", "sex_eq"):                           shapeEmailGtSex,
	keySet("country_null", "phone_code"):                   shapeCountryNullPhoneCode,
	keySet("city_null", "phone_code"):                      shapeCityNullPhoneCode,
	keySet("fname_any", "country_null", "sex_eq"):          shapeFnameCountryNullSex,
	keySet("fname_any", "city_null", "sex_eq"):             shapeFnameCityNullSex,
	keySet("fname_any", "sex_eq"):                          shapeFnameSex,
	keySet("fname_any", "country_null"):                    shapeFnameCountryNull,
	keySet("fname_any", "city_null"):                       shapeFnameCityNull,
	keySet("email_lt", "city_null"):                        shapeEmailLtCityNull,
	keySet("email_gt", "city_null"):                        shapeEmailGtCityNull,
	keySet("email_lt", "country_null", "sex_eq"):           shapeEmailLtCountryNullSex,
	keySet("email_gt", "country_null", "sex_eq"):           shapeEmailGtCountryNullSex,
}

// fkey is a fixed 3-int32 compound key; unused components are 0.
type fkey struct{ a, b, c int32 }

// FilterIndex holds one posting-list map per shape.
type FilterIndex struct {
	buckets [numFilterShapes]map[fkey][]int32
}

// NewFilterIndex returns an empty compound filter index.
func NewFilterIndex() *FilterIndex {
	fi := &FilterIndex{}
	for i := range fi.buckets {
		fi.buckets[i] = make(map[fkey][]int32)
	}
	return fi
}

func nullFlag(code int32) int32 {
	if code == 0 {
		return 1
	}
	return 0
}

func (fi *FilterIndex) update(shape filterShape, key fkey, id int32, cap int) {
	b := fi.buckets[shape]
	vec := insertSorted(b[key], id)
	if len(vec) > cap {
		vec = vec[1:]
	}
	b[key] = vec
}

// addAccount registers acc's id into every shape bucket it belongs to.
func (fi *FilterIndex) addAccount(st *Store, acc *Account) {
	fi.mutateAccount(st, acc, 1)
}

// removeAccount undoes addAccount for acc's current field values.
func (fi *FilterIndex) removeAccount(st *Store, acc *Account) {
	fi.mutateAccount(st, acc, -1)
}

// mutateAccount applies (sign > 0: insert, sign < 0: remove) every
// compound-shape membership update for acc.
func (fi *FilterIndex) mutateAccount(st *Store, acc *Account, sign int) {
	countryNull := nullFlag(acc.Country)
	cityNull := nullFlag(acc.City)

	apply := func(shape filterShape, key fkey, cap int) {
		if sign > 0 {
			fi.update(shape, key, acc.ID, cap)
		} else {
			b := fi.buckets[shape]
			b[key] = removeSorted(b[key], acc.ID)
		}
	}

	apply(shapeSexCountryNull, fkey{acc.Sex, countryNull, 0}, keepTop)
	apply(shapeCountryNull, fkey{countryNull, 0, 0}, keepTop)
	apply(shapeSexCityNull, fkey{acc.Sex, cityNull, 0}, keepTop)
	apply(shapeCityNull, fkey{cityNull, 0, 0}, keepTop)

	if acc.Email != "" {
		own := int32(acc.Email[0])
		for ch := own; ch < int32('z'); ch++ {
			apply(shapeEmailLt, fkey{ch, 0, 0}, keepTopEmail)
			apply(shapeEmailLtSex, fkey{ch, acc.Sex, 0}, keepTopEmail)
			apply(shapeEmailLtCityNull, fkey{ch, cityNull, 0}, keepTopEmail)
			apply(shapeEmailLtCountryNullSex, fkey{ch, countryNull, acc.Sex}, keepTopEmail)
		}
		for ch := int32('a'); ch <= own; ch++ {
			apply(shapeEmailGt, fkey{ch, 0, 0}, keepTopEmail)
			apply(shapeEmailGtSex, fkey{ch, acc.Sex, 0}, keepTopEmail)
			apply(shapeEmailGtCityNull, fkey{ch, cityNull, 0}, keepTopEmail)
			apply(shapeEmailGtCountryNullSex, fkey{ch, countryNull, acc.Sex}, keepTopEmail)
		}
	}

	apply(shapeCountryNullPhoneCode, fkey{countryNull, acc.Phone.Code, 0}, keepTop)
	apply(shapeCityNullPhoneCode, fkey{cityNull, acc.Phone.Code, 0}, keepTop)
	apply(shapeFnameCountryNullSex, fkey{acc.FName, countryNull, acc.Sex}, keepTop)
	apply(shapeFnameCityNullSex, fkey{acc.FName, cityNull, acc.Sex}, keepTop)
	apply(shapeFnameCountryNull, fkey{acc.FName, countryNull, 0}, keepTop)
	apply(shapeFnameCityNull, fkey{acc.FName, cityNull, 0}, keepTop)
	apply(shapeFnameSex, fkey{acc.FName, acc.Sex, 0}, keepTop)
}

// lookup returns the precomputed posting list for the active key set
// in m (canonical shape keys, not values), or (nil, false) if no shape
// matches. lookup itself merges the per-name lists for fname_any; the
// caller is responsible for re-validating email_lt/gt with full-string
// comparison, since the index buckets by first byte only.
func (fi *FilterIndex) lookup(m *filterMatcher) ([]int32, bool) {
	shape, ok := filterShapeByKeys[m.activeKeySet()]
	if !ok {
		return nil, false
	}
	// The fast index only fires when interests_contains has fewer
	// than 2 members; fname_any shapes disable it otherwise.
	if m.interestsContains.Count() > 1 {
		return nil, false
	}
	countryNull := int32(0)
	if m.countryNull1 {
		countryNull = 1
	}
	cityNull := int32(0)
	if m.cityNull1 {
		cityNull = 1
	}
	switch shape {
	case shapeCountryNull:
		return fi.buckets[shape][fkey{countryNull, 0, 0}], true
	case shapeCityNull:
		return fi.buckets[shape][fkey{cityNull, 0, 0}], true
	case shapeEmailLt:
		return fi.buckets[shape][fkey{int32(firstByte(m.emailLt)), 0, 0}], true
	case shapeEmailGt:
		return fi.buckets[shape][fkey{int32(firstByte(m.emailGt)), 0, 0}], true
	case shapeSexCountryNull:
		return fi.buckets[shape][fkey{m.sex, countryNull, 0}], true
	case shapeSexCityNull:
		return fi.buckets[shape][fkey{m.sex, cityNull, 0}], true
	case shapeEmailLtSex:
		return fi.buckets[shape][fkey{int32(firstByte(m.emailLt)), m.sex, 0}], true
	case shapeEmailGtSex:
		return fi.buckets[shape][fkey{int32(firstByte(m.emailGt)), m.sex, 0}], true
	case shapeCountryNullPhoneCode:
		return fi.buckets[shape][fkey{countryNull, m.phoneCode, 0}], true
	case shapeCityNullPhoneCode:
		return fi.buckets[shape][fkey{cityNull, m.phoneCode, 0}], true
	case shapeEmailLtCityNull:
		return fi.buckets[shape][fkey{int32(firstByte(m.emailLt)), cityNull, 0}], true
	case shapeEmailGtCityNull:
		return fi.buckets[shape][fkey{int32(firstByte(m.emailGt)), cityNull, 0}], true
	case shapeEmailLtCountryNullSex:
		return fi.buckets[shape][fkey{int32(firstByte(m.emailLt)), countryNull, m.sex}], true
	case shapeEmailGtCountryNullSex:
		return fi.buckets[shape][fkey{int32(firstByte(m.emailGt)), countryNull, m.sex}], true
	case shapeFnameCountryNullSex:
		var out []int32
		for _, fn := range m.fnameAny {
			out = mergeSorted(out, fi.buckets[shape][fkey{fn, countryNull, m.sex}])
		}
		return out, true
	case shapeFnameCityNullSex:
		var out []int32
		for _, fn := range m.fnameAny {
			out = mergeSorted(out, fi.buckets[shape][fkey{fn, cityNull, m.sex}])
		}
		return out, true
	case shapeFnameSex:
		var out []int32
		for _, fn := range m.fnameAny {
			out = mergeSorted(out, fi.buckets[shape][fkey{fn, m.sex, 0}])
		}
		return out, true
	case shapeFnameCountryNull:
		var out []int32
		for _, fn := range m.fnameAny {
			out = mergeSorted(out, fi.buckets[shape][fkey{fn, countryNull, 0}])
		}
		return out, true
	case shapeFnameCityNull:
		var out []int32
		for _, fn := range m.fnameAny {
			out = mergeSorted(out, fi.buckets[shape][fkey{fn, cityNull, 0}])
		}
		return out, true
	default:
		return nil, false
	}
}

func firstByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}
