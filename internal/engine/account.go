// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

// NullDate is the sentinel for an absent unix-seconds date field
// (birth, joined, premium_start, premium_finish). Chosen well outside
// any plausible timestamp.
const NullDate int32 = -1 << 31

// Recommend-order status ranks (s in "(0 if premium else 3) + s").
const (
	statusRankFree = 0
	statusRankHard = 1
	statusRankTaken = 2
)

// Like records that LikerID liked the account this Like is filed
// under, at unix-seconds Ts. A likee bucket may contain more than one
// Like for the same LikerID (duplicate likes are tolerated and merged
// by SUGGEST at read time, never collapsed on write).
type Like struct {
	LikerID int32
	Ts      int32
}

// Account is the engine's internal row representation: string-valued
// attributes are dictionary codes (0 = absent), interests are a fixed
// bitset, likes are a sorted unique vector of account ids the account
// has liked (not who liked it; that direction lives in the likes
// index).
type Account struct {
	ID     int32
	Email  string // kept as a plain string: must support exact/prefix comparisons and global uniqueness, not profitably dictionary-coded
	Sex    int32  // dict code: "m" or "f"
	Status int32  // dict code: one of the three status strings
	FName  int32  // dict code, 0 = absent
	SName  int32  // dict code, 0 = absent

	HasPhone bool
	Phone    Phone

	Birth         int32 // NullDate if absent
	Joined        int32
	PremiumStart  int32 // NullDate if absent
	PremiumFinish int32

	Country int32 // dict code, 0 = absent
	City    int32 // dict code, 0 = absent

	Interests InterestSet
	Likes     []int32 // sorted unique, ids this account has liked

	// Derived fields, recomputed after every insert/patch.
	IsPremium      bool
	RecommendOrder int
}

// recomputeDerived fills IsPremium and RecommendOrder from the rest of
// the account's current state and the engine's current clock:
// is_premium = premium_start != NULL_DATE && premium_start
// <= now < premium_finish; recommend_order = (0 if premium else 3) + s.
func (a *Account) recomputeDerived(now int32, statusRank func(int32) int) {
	a.IsPremium = a.PremiumStart != NullDate && a.PremiumStart <= now && now < a.PremiumFinish
	base := 3
	if a.IsPremium {
		base = 0
	}
	a.RecommendOrder = base + statusRank(a.Status)
}
