// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

// pairKey identifies an unordered pair of interest ids, always stored
// with lo < hi so (a,b) and (b,a) hash identically.
type pairKey struct {
	lo, hi int32
}

// recommendOrders is the number of recommend_order buckets (0..5).
const recommendOrders = 6

// Indexes holds every secondary index the planners consult. All
// per-attribute posting lists are ascending, duplicate-free []int32
// maintained by insertSorted/removeSorted. sexSlot(sex) picks 0/1 for
// the per-sex indexes (recommend index, likes index).
type Indexes struct {
	KnownEmails map[string]struct{}
	KnownPhones map[phoneCodeNumber]struct{}

	CityIndex      map[int32][]int32
	CountryIndex   map[int32][]int32
	BirthYearIndex map[int32][]int32
	FNameIndex     map[int32][]int32

	InterestIndex      [maxInterest + 1][]int32    // all sexes combined
	InterestIndexBySex [2][maxInterest + 1][]int32 // per sex
	PairInterestIndex  map[pairKey][]int32

	// RecommendIndex[sex][interest][order] is the posting list of
	// accounts of that sex holding that interest, bucketed by their
	// recommend_order. Sized eagerly to maxInterest+1.
	RecommendIndex [2][maxInterest + 1][recommendOrders][]int32

	// LikesIndexBySex[sex][likeeID] is the append-sorted-by-liker-id
	// bucket of Likes filed by likers of that sex against likeeID.
	LikesIndexBySex [2]map[int32][]Like
}

type phoneCodeNumber struct {
	Code   int32
	Number int64
}

func newIndexes() *Indexes {
	return &Indexes{
		KnownEmails:       make(map[string]struct{}),
		KnownPhones:       make(map[phoneCodeNumber]struct{}),
		CityIndex:         make(map[int32][]int32),
		CountryIndex:      make(map[int32][]int32),
		BirthYearIndex:    make(map[int32][]int32),
		FNameIndex:        make(map[int32][]int32),
		PairInterestIndex: make(map[pairKey][]int32),
		LikesIndexBySex:   [2]map[int32][]Like{make(map[int32][]Like), make(map[int32][]Like)},
	}
}

func makePair(a, b int32) pairKey {
	if a < b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// sexSlot maps a sex dict code to 0/1 using the Store's interned
// constants; male=0, female=1.
func (s *Store) sexSlot(sex int32) int {
	if sex == s.Consts.Male {
		return 0
	}
	return 1
}

func birthYear(birth int32) int32 {
	if birth == NullDate {
		return NullDate
	}
	return yearFromSeconds(birth)
}

// addToIndexes adds acc's id to every secondary index it belongs in,
// including the compound filter and group indexes. Call only on an
// account whose fields are already final for this mutation.
func (st *Store) addToIndexes(acc *Account) {
	ix := st.Indexes
	if acc.Email != "" {
		ix.KnownEmails[acc.Email] = struct{}{}
	}
	if acc.HasPhone {
		ix.KnownPhones[phoneCodeNumber{acc.Phone.Code, acc.Phone.Number}] = struct{}{}
	}
	if acc.City != 0 {
		ix.CityIndex[acc.City] = insertSorted(ix.CityIndex[acc.City], acc.ID)
	}
	if acc.Country != 0 {
		ix.CountryIndex[acc.Country] = insertSorted(ix.CountryIndex[acc.Country], acc.ID)
	}
	if by := birthYear(acc.Birth); by != NullDate {
		ix.BirthYearIndex[by] = insertSorted(ix.BirthYearIndex[by], acc.ID)
	}
	if acc.FName != 0 {
		ix.FNameIndex[acc.FName] = insertSorted(ix.FNameIndex[acc.FName], acc.ID)
	}

	slot := st.sexSlot(acc.Sex)
	interests := acc.Interests.ToSlice()
	for _, i := range interests {
		ix.InterestIndex[i] = insertSorted(ix.InterestIndex[i], acc.ID)
		ix.InterestIndexBySex[slot][i] = insertSorted(ix.InterestIndexBySex[slot][i], acc.ID)
		ix.RecommendIndex[slot][i][acc.RecommendOrder] = insertSorted(ix.RecommendIndex[slot][i][acc.RecommendOrder], acc.ID)
	}
	for i := 0; i < len(interests); i++ {
		for j := i + 1; j < len(interests); j++ {
			k := makePair(int32(interests[i]), int32(interests[j]))
			ix.PairInterestIndex[k] = insertSorted(ix.PairInterestIndex[k], acc.ID)
		}
	}

	st.FilterIdx.addAccount(st, acc)
	st.GroupIdx.addAccount(st, acc)
}

// removeFromIndexes undoes addToIndexes for acc's current (pre-patch)
// field values. Likes and the likes index are never touched here:
// likes are append-only and never removed by patch.
func (st *Store) removeFromIndexes(acc *Account) {
	ix := st.Indexes
	if acc.Email != "" {
		delete(ix.KnownEmails, acc.Email)
	}
	if acc.HasPhone {
		delete(ix.KnownPhones, phoneCodeNumber{acc.Phone.Code, acc.Phone.Number})
	}
	if acc.City != 0 {
		ix.CityIndex[acc.City] = removeSorted(ix.CityIndex[acc.City], acc.ID)
	}
	if acc.Country != 0 {
		ix.CountryIndex[acc.Country] = removeSorted(ix.CountryIndex[acc.Country], acc.ID)
	}
	if by := birthYear(acc.Birth); by != NullDate {
		ix.BirthYearIndex[by] = removeSorted(ix.BirthYearIndex[by], acc.ID)
	}
	if acc.FName != 0 {
		ix.FNameIndex[acc.FName] = removeSorted(ix.FNameIndex[acc.FName], acc.ID)
	}

	slot := st.sexSlot(acc.Sex)
	interests := acc.Interests.ToSlice()
	for _, i := range interests {
		ix.InterestIndex[i] = removeSorted(ix.InterestIndex[i], acc.ID)
		ix.InterestIndexBySex[slot][i] = removeSorted(ix.InterestIndexBySex[slot][i], acc.ID)
		ix.RecommendIndex[slot][i][acc.RecommendOrder] = removeSorted(ix.RecommendIndex[slot][i][acc.RecommendOrder], acc.ID)
	}
	for i := 0; i < len(interests); i++ {
		for j := i + 1; j < len(interests); j++ {
			k := makePair(int32(interests[i]), int32(interests[j]))
			ix.PairInterestIndex[k] = removeSorted(ix.PairInterestIndex[k], acc.ID)
		}
	}

	st.FilterIdx.removeAccount(st, acc)
	st.GroupIdx.removeAccount(st, acc)
}

// addLike records that liker (of sex likerSex) liked likeeID at ts,
// filing a Like entry in the likee's same-sex-of-liker bucket.
// Duplicate (likerID) entries for the same likee are retained.
func (ix *Indexes) addLike(likerSex int, likeeID, likerID, ts int32) {
	bucket := ix.LikesIndexBySex[likerSex]
	bucket[likeeID] = insertLikeSorted(bucket[likeeID], Like{LikerID: likerID, Ts: ts})
}
