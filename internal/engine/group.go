// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "strconv"

// groupMatcher is the parsed, validated GROUP query: keys selects which
// fields to bucket by, order picks ascending/descending, and the
// remaining fields are optional predicates narrowing which accounts
// are counted at all.
type groupMatcher struct {
	Limit int
	Order int32
	Keys  []string

	GroupSex, GroupStatus, GroupCountry, GroupCity, GroupInterests bool

	Sex, Status, Country, City   int32
	Birth, BirthFrom, BirthTo    int32
	Joined, JoinedFrom, JoinedTo int32
	Interest                     int32
	Like                         int32
}

// GroupResult is one bucketed count in a GROUP response; every field
// except Count is nil unless that dimension was part of "keys".
type GroupResult struct {
	Sex       *string
	Status    *string
	Country   *string
	City      *string
	Interests *string
	Count     int32
}

// GroupsResult is the full GROUP response.
type GroupsResult struct {
	Groups []GroupResult
}

// Group runs the GROUP query described by params against the store,
// returning up to limit buckets ordered by count and then by the
// grouping key values, ascending or descending per the order parameter.
func (st *Store) Group(params []KV) (*GroupsResult, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	m, empty, err := st.makeGroupMatcher(params)
	if err != nil {
		return nil, err
	}
	if empty {
		return &GroupsResult{Groups: []GroupResult{}}, nil
	}

	groups, ok := st.GroupIdx.lookup(m)
	if !ok {
		groups = make(map[GroupKey]int32)
		if m.Like != 0 {
			merged := mergeLikeIDs(st.Indexes.LikesIndexBySex[0][m.Like], st.Indexes.LikesIndexBySex[1][m.Like])
			for _, id := range merged {
				acc := st.Accounts[id]
				if acc == nil || !groupMatches(acc, m) {
					continue
				}
				processGroup(acc, m, groups)
			}
		} else {
			for id := int32(1); id <= st.MaxID; id++ {
				acc := st.Accounts[id]
				if acc == nil || !groupMatches(acc, m) {
					continue
				}
				processGroup(acc, m, groups)
			}
		}
	}

	return st.topGroups(m, groups), nil
}

func (st *Store) makeGroupMatcher(params []KV) (*groupMatcher, bool, error) {
	m := &groupMatcher{}
	empty := false

	for _, kv := range params {
		key, value := kv.Key, kv.Value
		switch key {
		case "query_id":
			continue
		case "keys":
			names, err := splitGroupKeys(value)
			if err != nil {
				return nil, false, err
			}
			m.Keys = names
			for _, name := range names {
				switch name {
				case "sex":
					m.GroupSex = true
				case "status":
					m.GroupStatus = true
				case "country":
					m.GroupCountry = true
				case "city":
					m.GroupCity = true
				case "interests":
					m.GroupInterests = true
				default:
					return nil, false, ErrBadRequest
				}
			}
			continue
		case "order":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil || (n != -1 && n != 1) {
				return nil, false, ErrBadRequest
			}
			m.Order = int32(n)
			continue
		case "limit":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return nil, false, ErrBadRequest
			}
			m.Limit = n
			continue
		}

		switch key {
		case "sex":
			if value == "" {
				return nil, false, ErrBadRequest
			}
			code, _ := st.Dict.GetExistingKey(value)
			m.Sex = code
			if code == 0 {
				empty = true
			}
		case "status":
			if value == "" {
				return nil, false, ErrBadRequest
			}
			code, _ := st.Dict.GetExistingKey(value)
			m.Status = code
			if code == 0 {
				empty = true
			}
		case "country":
			if value == "" {
				return nil, false, ErrBadRequest
			}
			code, _ := st.Dict.GetExistingKey(value)
			m.Country = code
			if code == 0 {
				empty = true
			}
		case "city":
			if value == "" {
				return nil, false, ErrBadRequest
			}
			code, _ := st.Dict.GetExistingKey(value)
			m.City = code
			if code == 0 {
				empty = true
			}
		case "birth":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, false, ErrBadRequest
			}
			m.Birth = int32(n)
			m.BirthFrom = secondsFromYear(m.Birth)
			m.BirthTo = secondsFromYear(m.Birth + 1)
		case "joined":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, false, ErrBadRequest
			}
			m.Joined = int32(n)
			m.JoinedFrom = secondsFromYear(m.Joined)
			m.JoinedTo = secondsFromYear(m.Joined + 1)
		case "interests":
			if value == "" {
				return nil, false, ErrBadRequest
			}
			code, _ := st.InterestDict.GetExistingKey(value)
			m.Interest = code
			if code == 0 {
				empty = true
			}
		case "likes":
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return nil, false, ErrBadRequest
			}
			m.Like = int32(n)
		default:
			return nil, false, ErrBadRequest
		}
	}

	if len(m.Keys) == 0 || m.Limit <= 0 {
		return nil, false, ErrBadRequest
	}
	return m, empty, nil
}

func splitGroupKeys(value string) ([]string, error) {
	if value == "" {
		return nil, ErrBadRequest
	}
	var out []string
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == ',' {
			out = append(out, value[start:i])
			start = i + 1
		}
	}
	return out, nil
}

func groupMatches(acc *Account, m *groupMatcher) bool {
	if m.Sex != 0 && m.Sex != acc.Sex {
		return false
	}
	if m.Status != 0 && acc.Status != m.Status {
		return false
	}
	if m.Country != 0 && acc.Country != m.Country {
		return false
	}
	if m.City != 0 && acc.City != m.City {
		return false
	}
	if m.Birth != 0 && (acc.Birth < m.BirthFrom || acc.Birth >= m.BirthTo) {
		return false
	}
	if m.Joined != 0 && (acc.Joined < m.JoinedFrom || acc.Joined >= m.JoinedTo) {
		return false
	}
	if m.Interest != 0 {
		if acc.Interests.IsEmpty() || !acc.Interests.Contains(int(m.Interest)) {
			return false
		}
	}
	if m.Like != 0 {
		if len(acc.Likes) == 0 || !containsSorted(acc.Likes, m.Like) {
			return false
		}
	}
	return true
}

// processGroup increments the bucket acc falls into. Grouping by
// interests multiplies an account into one contribution per interest
// it holds; every other grouping shape contributes exactly once.
func processGroup(acc *Account, m *groupMatcher, groups map[GroupKey]int32) {
	sex, status, country, city := int32(0), int32(0), int32(0), int32(0)
	if m.GroupSex {
		sex = acc.Sex
	}
	if m.GroupStatus {
		status = acc.Status
	}
	if m.GroupCountry {
		country = acc.Country
	}
	if m.GroupCity {
		city = acc.City
	}

	if m.GroupInterests {
		for _, interest := range acc.Interests.ToSlice() {
			groups[GroupKey{Sex: sex, Status: status, Country: country, City: city, Interests: int32(interest)}]++
		}
		return
	}
	groups[GroupKey{Sex: sex, Status: status, Country: country, City: city}]++
}

func dictOrNil(d *Dict, code int32) *string {
	if code == 0 {
		return nil
	}
	v := d.GetValue(code)
	return &v
}

func groupResultFrom(st *Store, k GroupKey, count int32) *GroupResult {
	return &GroupResult{
		Sex:       dictOrNil(st.Dict, k.Sex),
		Status:    dictOrNil(st.Dict, k.Status),
		Country:   dictOrNil(st.Dict, k.Country),
		City:      dictOrNil(st.Dict, k.City),
		Interests: dictOrNil(st.InterestDict, k.Interests),
		Count:     count,
	}
}

func groupField(name string, g *GroupResult) *string {
	switch name {
	case "sex":
		return g.Sex
	case "status":
		return g.Status
	case "country":
		return g.Country
	case "city":
		return g.City
	case "interests":
		return g.Interests
	default:
		return nil
	}
}

// cmpDictPtr orders two optional dictionary-decoded strings, null
// first.
func cmpDictPtr(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

// rawCmpGroups compares by count ascending, then by matcher.Keys in
// the order the caller listed them.
func rawCmpGroups(m *groupMatcher, a, b *GroupResult) int {
	if a.Count != b.Count {
		if a.Count < b.Count {
			return -1
		}
		return 1
	}
	for _, k := range m.Keys {
		if c := cmpDictPtr(groupField(k, a), groupField(k, b)); c != 0 {
			return c
		}
	}
	return 0
}

// topGroups drains groups into a TopN bounded by m.Limit using the
// order-adjusted comparator, then returns the result in the exact
// order TopN yields it: TopN keeps the smallest K under its
// comparator using a bounded max-heap, and with order folded into the
// comparator sign that smallest-K is already the final
// ascending/descending answer.
func (st *Store) topGroups(m *groupMatcher, groups map[GroupKey]int32) *GroupsResult {
	less := func(a, b *GroupResult) bool {
		c := rawCmpGroups(m, a, b)
		if m.Order <= 0 {
			c = -c
		}
		return c < 0
	}
	tn := NewTopN[*GroupResult](m.Limit, less)
	for k, v := range groups {
		if v <= 0 {
			continue
		}
		tn.Push(groupResultFrom(st, k, v))
	}
	sorted := tn.IntoSorted()
	out := make([]GroupResult, len(sorted))
	for i, g := range sorted {
		out[i] = *g
	}
	return &GroupsResult{Groups: out}
}
