// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "strconv"

// recommendMatcher is the parsed, validated RECOMMEND query: an
// optional city/country narrowing on top of the target's own
// interests.
type recommendMatcher struct {
	Limit         int
	Country, City int32
}

// RecommendAccount is a RECOMMEND result row, projected to a fixed
// subset of fields (never sex/country/city/
// joined/interests/likes: those are the target's own search
// criteria, not part of the candidate's projection).
type RecommendAccount struct {
	ID      int32
	Email   string
	Status  *string
	SName   *string
	FName   *string
	Birth   *int32
	Premium *PremiumView
}

// Recommend returns up to limit accounts of the opposite sex to id,
// sharing at least one interest, ranked by recommend_order
// ascending, interest overlap descending, birth-date distance ascending,
// id ascending.
func (st *Store) Recommend(id int32, params []KV) ([]*RecommendAccount, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	person := st.getLocked(id)
	if person == nil {
		return nil, ErrNotFound
	}

	m, empty, err := st.makeRecommendMatcher(params)
	if err != nil {
		return nil, err
	}
	if empty || person.Interests.IsEmpty() {
		return nil, nil
	}

	// Opposite-sex candidates are stratified under the other sex's
	// recommend index.
	targetSlot := 1
	if person.Sex != st.Consts.Male {
		targetSlot = 0
	}

	var cityIDs []int32
	hasCity := m.City != 0
	if hasCity {
		cityIDs = st.Indexes.CityIndex[m.City]
	}
	var countryIDs []int32
	hasCountry := m.Country != 0
	if hasCountry {
		countryIDs = st.Indexes.CountryIndex[m.Country]
	}
	usedCity := false

	less := func(a, b *Account) bool { return cmpRecommend(person, a, b) < 0 }
	result := NewTopN[*Account](m.Limit, less)

	interests := person.Interests.ToSlice()

	for order := 0; order < recommendOrders; order++ {
		var ids []int32
		for _, interest := range interests {
			ids2 := st.Indexes.RecommendIndex[targetSlot][interest][order]
			if hasCity && len(ids2) >= len(cityIDs) {
				ids = append([]int32(nil), cityIDs...)
				usedCity = true
				result.Clear()
				break
			}
			if hasCountry && len(ids2) >= len(countryIDs) {
				ids = append([]int32(nil), countryIDs...)
				usedCity = true
				result.Clear()
				break
			}
			ids = mergeSorted(ids, ids2)
		}

		for _, cid := range ids {
			cand := st.Accounts[cid]
			if cand == nil {
				continue
			}
			if !usedCity && cand.RecommendOrder != order {
				continue
			}
			if cand.Sex == person.Sex {
				continue
			}
			if !recommendMatches(cand, m) {
				continue
			}
			if cand.Interests.IsEmpty() || !person.Interests.ContainsAny(cand.Interests) {
				continue
			}
			result.Push(cand)
		}

		if usedCity || result.Len() >= m.Limit {
			break
		}
	}

	sorted := result.IntoSorted()
	out := make([]*RecommendAccount, len(sorted))
	for i, acc := range sorted {
		out[i] = projectRecommend(st, acc)
	}
	return out, nil
}

func (st *Store) makeRecommendMatcher(params []KV) (*recommendMatcher, bool, error) {
	m := &recommendMatcher{}
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
			m.Limit = n
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
		default:
			return nil, false, ErrBadRequest
		}
	}

	if m.Limit <= 0 {
		return nil, false, ErrBadRequest
	}
	return m, empty, nil
}

func recommendMatches(acc *Account, m *recommendMatcher) bool {
	if m.Country != 0 && acc.Country != m.Country {
		return false
	}
	if m.City != 0 && acc.City != m.City {
		return false
	}
	return true
}

// cmpRecommend orders candidates with lower recommend_order
// first, then larger interest overlap with person, then smaller
// absolute birth-date distance, then smaller id.
func cmpRecommend(person, a, b *Account) int {
	if a.RecommendOrder != b.RecommendOrder {
		if a.RecommendOrder < b.RecommendOrder {
			return -1
		}
		return 1
	}
	overlapA := person.Interests.CountCommon(a.Interests)
	overlapB := person.Interests.CountCommon(b.Interests)
	if overlapA != overlapB {
		if overlapA > overlapB {
			return -1
		}
		return 1
	}
	da := absInt32(a.Birth - person.Birth)
	db := absInt32(b.Birth - person.Birth)
	if da != db {
		if da < db {
			return -1
		}
		return 1
	}
	if a.ID != b.ID {
		if a.ID < b.ID {
			return -1
		}
		return 1
	}
	return 0
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func projectRecommend(st *Store, acc *Account) *RecommendAccount {
	return &RecommendAccount{
		ID:      acc.ID,
		Email:   acc.Email,
		Status:  dictOrNil(st.Dict, acc.Status),
		SName:   dictOrNil(st.Dict, acc.SName),
		FName:   dictOrNil(st.Dict, acc.FName),
		Birth:   birthOrNil(acc.Birth),
		Premium: premiumViewOrNil(acc),
	}
}

func birthOrNil(b int32) *int32 {
	if b == NullDate {
		return nil
	}
	v := b
	return &v
}

func premiumViewOrNil(acc *Account) *PremiumView {
	if acc.PremiumStart == NullDate {
		return nil
	}
	return &PremiumView{Start: acc.PremiumStart, Finish: acc.PremiumFinish}
}
