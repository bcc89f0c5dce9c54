// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import (
	"strconv"
	"strings"
)

// filterMode picks a shortcut predicate sieve for the common
// {interests_contains, sex_eq[, status_eq|status_neq]} combination,
// where every remaining predicate is already known not to be active.
type filterMode int

const (
	filterModeStandard filterMode = iota
	filterModeFastInterests
)

var filterModeByKeys = map[string]filterMode{
	keySet("interests_contains", "sex_eq"):               filterModeFastInterests,
	keySet("interests_contains", "sex_eq", "status_eq"):  filterModeFastInterests,
	keySet("interests_contains", "sex_eq", "status_neq"): filterModeFastInterests,
}

// filterMatcher is the parsed, validated FILTER query. Zero value of
// every dict-coded field means "not active"; presence is also tracked
// per-field below to drive projection.
type filterMatcher struct {
	limit int
	mode  filterMode
	keys  []string // active predicate key names, in first-seen order

	sex int32

	emailDomain string
	hasEmailDom bool
	emailLt     string
	emailGt     string

	statusEq, statusNeq int32

	fname      int32
	fnameAny   []int32
	fnameNull0 bool
	fnameNull1 bool

	sname       int32
	snameStarts string
	hasSnameSt  bool
	snameNull0  bool
	snameNull1  bool

	phoneCode  int32
	phoneNull0 bool
	phoneNull1 bool

	country      int32
	countryNull0 bool
	countryNull1 bool

	city        int32
	cityAny     []int32
	cityNull0   bool
	cityNull1   bool

	birthLt, birthGt   int32
	birthFrom, birthTo int32
	birthYear          int32

	interestsContains InterestSet
	hasIntContains    bool
	interestsAny      InterestSet
	hasIntAny         bool

	likesContains []int32

	premiumNow    bool
	premiumNull0  bool
	premiumNull1  bool
}

func newFilterMatcher() *filterMatcher {
	return &filterMatcher{birthLt: NullDate, birthGt: NullDate, birthFrom: NullDate, birthTo: NullDate}
}

func (m *filterMatcher) activeKeySet() string {
	return keySet(m.keys...)
}

// Filter runs the FILTER query described by params (order-preserving
// k=v pairs, already percent-decoded by the caller) against the store,
// returning up to limit accounts in descending id order, each
// projected to the fields its predicates touched.
func (st *Store) Filter(params []KV) ([]*ProjectedAccount, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	m, empty, err := st.makeFilterMatcher(params)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}

	if ids, ok := st.FilterIdx.lookup(m); ok {
		return st.collectDescending(reverseCopy(ids), m), nil
	}
	if ids, ok := st.filterTryIndex(m); ok {
		return st.collectDescending(ids, m), nil
	}
	return st.filterFullScan(m), nil
}

// KV is one order-preserving query-string key/value pair.
type KV struct {
	Key   string
	Value string
}

func (st *Store) makeFilterMatcher(params []KV) (*filterMatcher, bool, error) {
	m := newFilterMatcher()
	empty := false

	for _, kv := range params {
		key, value := kv.Key, kv.Value
		switch key {
		case "query_id":
			continue
		case "limit":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return nil, false, ErrBadRequest
			}
			m.limit = n
			continue
		}

		switch key {
		case "sex_eq":
			code, ok := st.Dict.GetExistingKey(value)
			m.sex = code
			if !ok {
				empty = true
			}
		case "email_domain":
			m.emailDomain = "@" + value
			m.hasEmailDom = true
		case "email_lt":
			m.emailLt = value
		case "email_gt":
			m.emailGt = value
		case "status_eq":
			code, ok := st.Dict.GetExistingKey(value)
			m.statusEq = code
			if !ok {
				empty = true
			}
		case "status_neq":
			code, ok := st.Dict.GetExistingKey(value)
			m.statusNeq = code
			if !ok {
				empty = true
			}
		case "fname_eq":
			code, ok := st.Dict.GetExistingKey(value)
			m.fname = code
			if !ok {
				empty = true
			}
		case "fname_any":
			m.fnameAny = st.codesExisting(strings.Split(value, ","))
		case "fname_null":
			if err := setNullFlag(&m.fnameNull0, &m.fnameNull1, value); err != nil {
				return nil, false, err
			}
		case "sname_eq":
			code, ok := st.Dict.GetExistingKey(value)
			m.sname = code
			if !ok {
				empty = true
			}
		case "sname_starts":
			m.snameStarts = value
			m.hasSnameSt = true
		case "sname_null":
			if err := setNullFlag(&m.snameNull0, &m.snameNull1, value); err != nil {
				return nil, false, err
			}
		case "phone_code":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, false, ErrBadRequest
			}
			m.phoneCode = int32(n)
		case "phone_null":
			if err := setNullFlag(&m.phoneNull0, &m.phoneNull1, value); err != nil {
				return nil, false, err
			}
		case "country_eq":
			code, ok := st.Dict.GetExistingKey(value)
			m.country = code
			if !ok {
				empty = true
			}
		case "country_null":
			if err := setNullFlag(&m.countryNull0, &m.countryNull1, value); err != nil {
				return nil, false, err
			}
		case "city_eq":
			code, ok := st.Dict.GetExistingKey(value)
			m.city = code
			if !ok {
				empty = true
			}
		case "city_any":
			m.cityAny = st.codesExisting(strings.Split(value, ","))
		case "city_null":
			if err := setNullFlag(&m.cityNull0, &m.cityNull1, value); err != nil {
				return nil, false, err
			}
		case "birth_lt":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, false, ErrBadRequest
			}
			m.birthLt = int32(n)
		case "birth_gt":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, false, ErrBadRequest
			}
			m.birthGt = int32(n)
		case "birth_year":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, false, ErrBadRequest
			}
			m.birthYear = int32(n)
			m.birthFrom = secondsFromYear(m.birthYear)
			m.birthTo = secondsFromYear(m.birthYear + 1)
		case "interests_contains":
			ids, ok := st.interestCodes(strings.Split(value, ","))
			if !ok {
				empty = true
			}
			m.interestsContains = InterestSetFromList(ids)
			m.hasIntContains = true
		case "interests_any":
			ids, _ := st.interestCodes(strings.Split(value, ","))
			m.interestsAny = InterestSetFromList(ids)
			m.hasIntAny = true
		case "likes_contains":
			ids, err := parseIntList(value)
			if err != nil {
				return nil, false, err
			}
			m.likesContains = dedupSortedInt32(ids)
		case "premium_now":
			if value != "1" {
				return nil, false, ErrBadRequest
			}
			m.premiumNow = true
		case "premium_null":
			if err := setNullFlag(&m.premiumNull0, &m.premiumNull1, value); err != nil {
				return nil, false, err
			}
		default:
			return nil, false, ErrBadRequest
		}
		m.keys = append(m.keys, key)
	}

	if m.limit == 0 {
		return nil, false, ErrBadRequest
	}
	if empty {
		return m, true, nil
	}
	if mode, ok := filterModeByKeys[m.activeKeySet()]; ok {
		m.mode = mode
	}
	return m, false, nil
}

func setNullFlag(f0, f1 *bool, value string) error {
	switch value {
	case "0":
		*f0 = true
	case "1":
		*f1 = true
	default:
		return ErrBadRequest
	}
	return nil
}

func (st *Store) codesExisting(values []string) []int32 {
	out := make([]int32, 0, len(values))
	for _, v := range values {
		if code, ok := st.Dict.GetExistingKey(v); ok {
			out = append(out, code)
		}
	}
	return out
}

func (st *Store) interestCodes(values []string) ([]int, bool) {
	out := make([]int, 0, len(values))
	ok := true
	for _, v := range values {
		code, found := st.InterestDict.GetExistingKey(v)
		if !found {
			ok = false
			continue
		}
		out = append(out, int(code))
	}
	return out, ok
}

func parseIntList(value string) ([]int32, error) {
	parts := strings.Split(value, ",")
	out := make([]int32, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, ErrBadRequest
		}
		out = append(out, int32(n))
	}
	return out, nil
}

func dedupSortedInt32(vec []int32) []int32 {
	var out []int32
	for _, v := range vec {
		out = insertSorted(out, v)
	}
	return out
}

func reverseCopy(ids []int32) []int32 {
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

// filterTryIndex implements the planning tiers 2-7: likes
// intersection, two-interest pair index, city equality/any, single
// interest (sex-aware), country equality, birth year, fname_any,
// interests_any, each returning a descending id stream.
func (st *Store) filterTryIndex(m *filterMatcher) ([]int32, bool) {
	if len(m.likesContains) > 0 {
		var ids []int32
		for i, likee := range m.likesContains {
			merged := mergeLikeIDs(st.Indexes.LikesIndexBySex[0][likee], st.Indexes.LikesIndexBySex[1][likee])
			if i == 0 {
				ids = merged
			} else {
				ids = retainAllSorted(ids, merged)
			}
		}
		return reverseCopy(ids), true
	}

	if m.hasIntContains && m.interestsContains.Count() >= 2 {
		list := m.interestsContains.ToSlice()
		key := makePair(int32(list[0]), int32(list[1]))
		return reverseCopy(st.Indexes.PairInterestIndex[key]), true
	}

	if m.city != 0 {
		return reverseCopy(st.Indexes.CityIndex[m.city]), true
	}
	if len(m.cityAny) > 0 {
		var ids []int32
		for _, c := range m.cityAny {
			ids = mergeSorted(ids, st.Indexes.CityIndex[c])
		}
		return reverseCopy(ids), true
	}

	if m.hasIntContains && m.interestsContains.Count() == 1 {
		interest := m.interestsContains.ToSlice()[0]
		if m.sex != 0 {
			slot := st.sexSlot(m.sex)
			return reverseCopy(st.Indexes.InterestIndexBySex[slot][interest]), true
		}
		return reverseCopy(st.Indexes.InterestIndex[interest]), true
	}

	if m.country != 0 {
		return reverseCopy(st.Indexes.CountryIndex[m.country]), true
	}
	if m.birthYear != 0 {
		return reverseCopy(st.Indexes.BirthYearIndex[m.birthYear]), true
	}
	if len(m.fnameAny) > 0 {
		var ids []int32
		for _, fn := range m.fnameAny {
			ids = mergeSorted(ids, st.Indexes.FNameIndex[fn])
		}
		return reverseCopy(ids), true
	}
	if m.hasIntAny {
		var ids []int32
		for _, interest := range m.interestsAny.ToSlice() {
			ids = mergeSorted(ids, st.Indexes.InterestIndex[interest])
		}
		return reverseCopy(ids), true
	}

	return nil, false
}

func mergeLikeIDs(male, female []Like) []int32 {
	var out []int32
	last := int32(-1)
	first := true
	for _, l := range male {
		if first || l.LikerID != last {
			out = append(out, l.LikerID)
			last = l.LikerID
			first = false
		}
	}
	for _, l := range female {
		out = insertSorted(out, l.LikerID)
	}
	return out
}

func (st *Store) filterFullScan(m *filterMatcher) []*ProjectedAccount {
	var out []*ProjectedAccount
	for id := st.MaxID; id >= 1; id-- {
		acc := st.Accounts[id]
		if acc == nil || !st.filterMatches(acc, m) {
			continue
		}
		out = append(out, st.projectFiltered(acc, m))
		if len(out) >= m.limit {
			break
		}
	}
	return out
}

func (st *Store) collectDescending(ids []int32, m *filterMatcher) []*ProjectedAccount {
	var out []*ProjectedAccount
	for _, id := range ids {
		acc := st.Accounts[id]
		if acc == nil || !st.filterMatches(acc, m) {
			continue
		}
		out = append(out, st.projectFiltered(acc, m))
		if len(out) >= m.limit {
			break
		}
	}
	return out
}

func (st *Store) filterMatches(acc *Account, m *filterMatcher) bool {
	if m.mode == filterModeFastInterests {
		if m.sex != 0 && m.sex != acc.Sex {
			return false
		}
		if m.statusEq != 0 && acc.Status != m.statusEq {
			return false
		}
		if m.statusNeq != 0 && acc.Status == m.statusNeq {
			return false
		}
		if m.hasIntContains {
			if acc.Interests.IsEmpty() || !acc.Interests.ContainsAll(m.interestsContains) {
				return false
			}
		}
		return true
	}

	if m.sex != 0 && m.sex != acc.Sex {
		return false
	}
	if m.hasEmailDom && !strings.HasSuffix(acc.Email, m.emailDomain) {
		return false
	}
	if m.emailLt != "" && acc.Email >= m.emailLt {
		return false
	}
	if m.emailGt != "" && acc.Email <= m.emailGt {
		return false
	}
	if m.statusEq != 0 && acc.Status != m.statusEq {
		return false
	}
	if m.statusNeq != 0 && acc.Status == m.statusNeq {
		return false
	}
	if m.fname != 0 && acc.FName != m.fname {
		return false
	}
	if len(m.fnameAny) > 0 && (acc.FName == 0 || !int32InSlice(m.fnameAny, acc.FName)) {
		return false
	}
	if m.fnameNull0 && acc.FName == 0 {
		return false
	}
	if m.fnameNull1 && acc.FName != 0 {
		return false
	}
	if m.sname != 0 && acc.SName != m.sname {
		return false
	}
	if m.hasSnameSt && (acc.SName == 0 || !strings.HasPrefix(st.Dict.GetValue(acc.SName), m.snameStarts)) {
		return false
	}
	if m.snameNull0 && acc.SName == 0 {
		return false
	}
	if m.snameNull1 && acc.SName != 0 {
		return false
	}
	if m.phoneCode != 0 && (!acc.HasPhone || acc.Phone.Code != m.phoneCode) {
		return false
	}
	if m.phoneNull0 && !acc.HasPhone {
		return false
	}
	if m.phoneNull1 && acc.HasPhone {
		return false
	}
	if m.country != 0 && acc.Country != m.country {
		return false
	}
	if m.countryNull0 && acc.Country == 0 {
		return false
	}
	if m.countryNull1 && acc.Country != 0 {
		return false
	}
	if m.city != 0 && acc.City != m.city {
		return false
	}
	if len(m.cityAny) > 0 && (acc.City == 0 || !int32InSlice(m.cityAny, acc.City)) {
		return false
	}
	if m.cityNull0 && acc.City == 0 {
		return false
	}
	if m.cityNull1 && acc.City != 0 {
		return false
	}
	if m.birthLt != NullDate && acc.Birth >= m.birthLt {
		return false
	}
	if m.birthGt != NullDate && acc.Birth <= m.birthGt {
		return false
	}
	if m.birthYear != 0 && (acc.Birth < m.birthFrom || acc.Birth >= m.birthTo) {
		return false
	}
	if m.hasIntContains {
		if acc.Interests.IsEmpty() || !acc.Interests.ContainsAll(m.interestsContains) {
			return false
		}
	}
	if m.hasIntAny {
		if acc.Interests.IsEmpty() || !acc.Interests.ContainsAny(m.interestsAny) {
			return false
		}
	}
	if len(m.likesContains) > 0 {
		if len(acc.Likes) == 0 {
			return false
		}
		for _, id := range m.likesContains {
			if !containsSorted(acc.Likes, id) {
				return false
			}
		}
	}
	if m.premiumNow && !acc.IsPremium {
		return false
	}
	if m.premiumNull0 && acc.PremiumStart == NullDate {
		return false
	}
	if m.premiumNull1 && acc.PremiumStart != NullDate {
		return false
	}
	return true
}

func int32InSlice(vec []int32, v int32) bool {
	for _, x := range vec {
		if x == v {
			return true
		}
	}
	return false
}

// ProjectedAccount is a FILTER result row: id and email are
// always present; every other field is a pointer, nil unless the
// matcher touched that attribute.
type ProjectedAccount struct {
	ID       int32
	Email    string
	Sex      *string
	SName    *string
	FName    *string
	Phone    *string
	Birth    *int32
	Country  *string
	City     *string
	Status   *string
	Premium  *PremiumView
}

// PremiumView is the wire shape of a premium interval.
type PremiumView struct {
	Start, Finish int32
}

func (st *Store) projectFiltered(acc *Account, m *filterMatcher) *ProjectedAccount {
	p := &ProjectedAccount{ID: acc.ID, Email: acc.Email}
	if m.sex != 0 {
		v := st.Dict.GetValue(acc.Sex)
		p.Sex = &v
	}
	if m.sname != 0 || m.hasSnameSt || m.snameNull0 || m.snameNull1 {
		v := st.Dict.GetValue(acc.SName)
		p.SName = &v
	}
	if m.fname != 0 || len(m.fnameAny) > 0 || m.fnameNull0 || m.fnameNull1 {
		v := st.Dict.GetValue(acc.FName)
		p.FName = &v
	}
	if (m.phoneCode != 0 || m.phoneNull0 || m.phoneNull1) && acc.HasPhone {
		v := formatPhone(acc.Phone)
		p.Phone = &v
	}
	if m.birthLt != NullDate || m.birthGt != NullDate || m.birthYear != 0 {
		v := acc.Birth
		p.Birth = &v
	}
	if m.country != 0 || m.countryNull0 || m.countryNull1 {
		v := st.Dict.GetValue(acc.Country)
		p.Country = &v
	}
	if m.city != 0 || len(m.cityAny) > 0 || m.cityNull0 || m.cityNull1 {
		v := st.Dict.GetValue(acc.City)
		p.City = &v
	}
	if m.statusEq != 0 || m.statusNeq != 0 {
		v := st.Dict.GetValue(acc.Status)
		p.Status = &v
	}
	if (m.premiumNow || m.premiumNull0 || m.premiumNull1) && acc.PremiumStart != NullDate {
		p.Premium = &PremiumView{Start: acc.PremiumStart, Finish: acc.PremiumFinish}
	}
	return p
}

func formatPhone(p Phone) string {
	num := strconv.FormatInt(p.Number, 10)[1:] // drop the leading "1" preservation digit
	return "8(" + strconv.FormatInt(int64(p.Code), 10) + ")" + num
}
