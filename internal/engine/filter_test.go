// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "testing"

func seedFilterStore(t *testing.T) *Store {
	t.Helper()
	st := NewStore(10, 0)
	seed := []AccountInput{
		{ID: i32p(1), Email: strp("alice@mail.ru"), Sex: strp("f"), Status: strp(StatusFree), Birth: i32p(0), Joined: i32p(0), City: strp("moscow"), Country: strp("russia"), Interests: []string{"skiing", "books"}},
		{ID: i32p(2), Email: strp("bob@mail.ru"), Sex: strp("m"), Status: strp(StatusTaken), Birth: i32p(0), Joined: i32p(0), City: strp("kazan"), Country: strp("russia"), Interests: []string{"skiing"}},
		{ID: i32p(3), Email: strp("carol@example.com"), Sex: strp("f"), Status: strp(StatusHard), Birth: i32p(0), Joined: i32p(0), City: strp("moscow"), Country: strp("france")},
	}
	for _, in := range seed {
		mustInsert(t, st, in)
	}
	return st
}

func TestFilterSexEqDescendingOrder(t *testing.T) {
	st := seedFilterStore(t)
	res, err := st.Filter([]KV{{Key: "sex_eq", Value: "f"}, {Key: "limit", Value: "10"}})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(res) != 2 || res[0].ID != 3 || res[1].ID != 1 {
		t.Fatalf("Filter(sex_eq=f) ids = %v, want [3 1] descending", idsOf(res))
	}
}

func TestFilterUnknownDictValueIsEmptyNotError(t *testing.T) {
	st := seedFilterStore(t)
	res, err := st.Filter([]KV{{Key: "city_eq", Value: "atlantis"}, {Key: "limit", Value: "10"}})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if res != nil {
		t.Errorf("Filter with an uninterned city = %v, want nil", res)
	}
}

func TestFilterMissingLimitIsBadRequest(t *testing.T) {
	st := seedFilterStore(t)
	if _, err := st.Filter([]KV{{Key: "sex_eq", Value: "f"}}); err != ErrBadRequest {
		t.Fatalf("Filter without limit = %v, want ErrBadRequest", err)
	}
}

func TestFilterUnknownParamIsBadRequest(t *testing.T) {
	st := seedFilterStore(t)
	if _, err := st.Filter([]KV{{Key: "bogus", Value: "1"}, {Key: "limit", Value: "10"}}); err != ErrBadRequest {
		t.Fatalf("Filter with unknown param = %v, want ErrBadRequest", err)
	}
}

func TestFilterEmailDomain(t *testing.T) {
	st := seedFilterStore(t)
	res, err := st.Filter([]KV{{Key: "email_domain", Value: "mail.ru"}, {Key: "limit", Value: "10"}})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(res) != 2 || res[0].ID != 2 || res[1].ID != 1 {
		t.Fatalf("Filter(email_domain=mail.ru) ids = %v, want [2 1]", idsOf(res))
	}
}

func TestFilterInterestsContainsSingleUsesSexAwareIndex(t *testing.T) {
	st := seedFilterStore(t)
	res, err := st.Filter([]KV{{Key: "interests_contains", Value: "skiing"}, {Key: "sex_eq", Value: "m"}, {Key: "limit", Value: "10"}})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(res) != 1 || res[0].ID != 2 {
		t.Fatalf("Filter(interests_contains=skiing,sex_eq=m) ids = %v, want [2]", idsOf(res))
	}
}

func TestFilterInterestsContainsPairUsesPairIndex(t *testing.T) {
	st := seedFilterStore(t)
	res, err := st.Filter([]KV{{Key: "interests_contains", Value: "skiing,books"}, {Key: "limit", Value: "10"}})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(res) != 1 || res[0].ID != 1 {
		t.Fatalf("Filter(interests_contains=skiing,books) ids = %v, want [1]", idsOf(res))
	}
}

func TestFilterProjectionOnlyIncludesTouchedFields(t *testing.T) {
	st := seedFilterStore(t)
	res, err := st.Filter([]KV{{Key: "sex_eq", Value: "f"}, {Key: "limit", Value: "10"}})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	for _, p := range res {
		if p.Sex == nil {
			t.Errorf("id %d: Sex = nil, want set (sex_eq was queried)", p.ID)
		}
		if p.City != nil || p.Country != nil || p.Status != nil {
			t.Errorf("id %d: untouched fields were projected: city=%v country=%v status=%v", p.ID, p.City, p.Country, p.Status)
		}
	}
}

func TestFilterLikesContains(t *testing.T) {
	st := seedFilterStore(t)
	if err := st.AppendLikes([]AppendLikeTriple{{Liker: 2, Likee: 1, Ts: 5}}); err != nil {
		t.Fatalf("AppendLikes failed: %v", err)
	}
	res, err := st.Filter([]KV{{Key: "likes_contains", Value: "1"}, {Key: "limit", Value: "10"}})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(res) != 1 || res[0].ID != 2 {
		t.Fatalf("Filter(likes_contains=1) ids = %v, want [2]", idsOf(res))
	}
}

func TestFilterLimitIsRespected(t *testing.T) {
	st := seedFilterStore(t)
	res, err := st.Filter([]KV{{Key: "limit", Value: "1"}})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(res) != 1 || res[0].ID != 3 {
		t.Fatalf("Filter(limit=1) ids = %v, want [3] (highest id first)", idsOf(res))
	}
}

func idsOf(res []*ProjectedAccount) []int32 {
	ids := make([]int32, len(res))
	for i, p := range res {
		ids[i] = p.ID
	}
	return ids
}
