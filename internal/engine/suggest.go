// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import (
	"sort"
	"strconv"
)

// suggestMatcher is the parsed, validated SUGGEST query: an optional
// city/country narrowing applied to candidate similar accounts.
type suggestMatcher struct {
	Limit         int
	Country, City int32
}

// SuggestAccount is a SUGGEST result row, projected to a fixed field
// subset.
type SuggestAccount struct {
	ID     int32
	Email  string
	Status *string
	SName  *string
	FName  *string
}

// Suggest returns up to limit accounts that a similar-liking-pattern
// account liked but id has not liked yet: similarity
// is accumulated from shared likees weighted by how close in time the
// two accounts liked them, new-like candidates are taken in descending
// id order per similar account, and deduplicated first-emission-wins
// across similar accounts in similarity order.
func (st *Store) Suggest(id int32, params []KV) ([]*SuggestAccount, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	person := st.getLocked(id)
	if person == nil {
		return nil, ErrNotFound
	}
	if person.Sex == 0 {
		return nil, ErrBadRequest
	}

	m, empty, err := st.makeSuggestMatcher(params)
	if err != nil {
		return nil, err
	}
	if empty || len(person.Likes) == 0 {
		return nil, nil
	}

	likesIndex := st.Indexes.LikesIndexBySex[st.sexSlot(person.Sex)]

	similarity := make(map[int32]float64, 1000)
	for _, likee := range person.Likes {
		merged := mergeMultipleLikes(likesIndex[likee])

		var ts int32
		found := false
		for _, l := range merged {
			if l.LikerID == person.ID {
				ts = l.Ts
				found = true
				break
			}
		}
		if !found {
			continue
		}
		for _, l := range merged {
			if l.LikerID == person.ID {
				continue
			}
			diff := absInt32(ts - l.Ts)
			if diff == 0 {
				similarity[l.LikerID] += 1.0
			} else {
				similarity[l.LikerID] += 1.0 / float64(diff)
			}
		}
	}

	type simEntry struct {
		id  int32
		sim float64
	}
	similars := make([]simEntry, 0, len(similarity))
	for sid, v := range similarity {
		if v > 0 {
			similars = append(similars, simEntry{sid, v})
		}
	}
	sort.Slice(similars, func(i, j int) bool {
		if similars[i].sim != similars[j].sim {
			return similars[i].sim > similars[j].sim
		}
		return similars[i].id < similars[j].id
	})

	known := make(map[int32]bool)
	var out []*SuggestAccount
	for _, s := range similars {
		if len(out) >= m.Limit {
			break
		}
		acc := st.Accounts[s.id]
		if acc == nil || acc.Sex != person.Sex || !suggestMatches(acc, m) {
			continue
		}
		newLikes := getNewLikes(person.Likes, acc.Likes)
		for i := len(newLikes) - 1; i >= 0; i-- {
			nid := newLikes[i]
			if known[nid] {
				continue
			}
			known[nid] = true
			cand := st.Accounts[nid]
			if cand == nil {
				continue
			}
			out = append(out, projectSuggest(st, cand))
			if len(out) >= m.Limit {
				break
			}
		}
	}
	return out, nil
}

func (st *Store) makeSuggestMatcher(params []KV) (*suggestMatcher, bool, error) {
	m := &suggestMatcher{}
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

func suggestMatches(acc *Account, m *suggestMatcher) bool {
	if m.Country != 0 && acc.Country != m.Country {
		return false
	}
	if m.City != 0 && acc.City != m.City {
		return false
	}
	return true
}

// mergeMultipleLikes collapses consecutive same-liker entries (the
// likes index tolerates duplicate likes from the same liker) into one
// entry per liker, averaging their timestamps by integer division;
// duplicate likes are never collapsed on write, only at read time.
func mergeMultipleLikes(likes []Like) []Like {
	if len(likes) == 0 {
		return nil
	}
	result := make([]Like, 0, len(likes))
	id := likes[0].LikerID
	tsSum := int64(likes[0].Ts)
	count := int64(1)
	for _, l := range likes[1:] {
		if l.LikerID != id {
			result = append(result, Like{LikerID: id, Ts: int32(tsSum / count)})
			id = l.LikerID
			tsSum = int64(l.Ts)
			count = 1
		} else {
			tsSum += int64(l.Ts)
			count++
		}
	}
	result = append(result, Like{LikerID: id, Ts: int32(tsSum / count)})
	return result
}

// getNewLikes returns, in ascending order, the ids present in
// otherLikes but absent from myLikes: a sorted-set difference over
// two sorted-unique vectors.
func getNewLikes(myLikes, otherLikes []int32) []int32 {
	var newLikes []int32
	pos1, pos2 := 0, 0
	for pos2 < len(otherLikes) {
		switch {
		case pos1 < len(myLikes) && myLikes[pos1] < otherLikes[pos2]:
			pos1++
		case pos1 >= len(myLikes) || myLikes[pos1] > otherLikes[pos2]:
			newLikes = insertSorted(newLikes, otherLikes[pos2])
			pos2++
		default:
			likeID := myLikes[pos1]
			for pos1 < len(myLikes) && myLikes[pos1] == likeID {
				pos1++
			}
			for pos2 < len(otherLikes) && otherLikes[pos2] == likeID {
				pos2++
			}
		}
	}
	return newLikes
}

func projectSuggest(st *Store, acc *Account) *SuggestAccount {
	return &SuggestAccount{
		ID:     acc.ID,
		Email:  acc.Email,
		Status: dictOrNil(st.Dict, acc.Status),
		SName:  dictOrNil(st.Dict, acc.SName),
		FName:  dictOrNil(st.Dict, acc.FName),
	}
}
