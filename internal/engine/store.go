// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "sync"

// Valid status strings. The grading domain's English equivalents of
// the three fixed enum values (free / still-complicated / taken).
const (
	StatusFree  = "free"
	StatusHard  = "complicated"
	StatusTaken = "taken"
)

// Consts holds the dictionary codes for the fixed enum values,
// interned once at Store construction so every predicate/derived-field
// comparison is an integer compare, never a string compare.
type Consts struct {
	Male, Female                        int32
	FreeStatus, HardStatus, TakenStatus int32
}

func (c Consts) statusRank(status int32) int {
	switch status {
	case c.HardStatus:
		return statusRankHard
	case c.TakenStatus:
		return statusRankTaken
	default:
		return statusRankFree
	}
}

// Store is the single shared aggregate: the dense accounts vector plus
// every dictionary and secondary index, guarded by one reader/writer
// lock (no finer-grained locking inside the engine).
type Store struct {
	mu sync.RWMutex

	Accounts []*Account // index 0 unused, sized MaxID+1
	MaxID    int32
	Now      int32

	Dict         *Dict
	InterestDict *Dict
	Consts       Consts

	Indexes   *Indexes
	FilterIdx *FilterIndex
	GroupIdx  *GroupIndex
}

// NewStore returns an empty Store sized for maxID accounts, with now
// as the engine's clock (the first line of options.txt at startup).
func NewStore(maxID int32, now int32) *Store {
	dict := NewDict()
	st := &Store{
		Accounts:     make([]*Account, maxID+1),
		MaxID:        0,
		Now:          now,
		Dict:         dict,
		InterestDict: NewDict(),
		Indexes:      newIndexes(),
		FilterIdx:    NewFilterIndex(),
		GroupIdx:     NewGroupIndex(),
	}
	st.Consts = Consts{
		Male:        dict.GetKey("m"),
		Female:      dict.GetKey("f"),
		FreeStatus:  dict.GetKey(StatusFree),
		HardStatus:  dict.GetKey(StatusHard),
		TakenStatus: dict.GetKey(StatusTaken),
	}
	return st
}

// Get returns the account at id, or nil if absent/out of range.
func (st *Store) Get(id int32) *Account {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.getLocked(id)
}

func (st *Store) getLocked(id int32) *Account {
	if id < 0 || int(id) >= len(st.Accounts) {
		return nil
	}
	return st.Accounts[id]
}

func (st *Store) grow(id int32) {
	if int(id) < len(st.Accounts) {
		return
	}
	grown := make([]*Account, id+1)
	copy(grown, st.Accounts)
	st.Accounts = grown
}

// LikeInput is one entry of an account's initial likes, as supplied by
// the bulk loader (accounts may arrive already liking other ids).
type LikeInput struct {
	ID int32
	Ts int32
}

// AccountInput is the mutation payload shared by Insert and Patch:
// every field is optional except where the contract below requires
// it. nil means "absent from the payload", not "explicitly cleared":
// patch never clears a field the caller omitted.
type AccountInput struct {
	ID            *int32
	Email         *string
	Sex           *string
	Status        *string
	FName         *string
	SName         *string
	Phone         *string
	Birth         *int32
	Joined        *int32
	PremiumStart  *int32
	PremiumFinish *int32
	Country       *string
	City          *string
	Interests     []string
	Likes         []LikeInput
}

// Insert creates a new account. Required fields: id, email, sex,
// status, birth, joined. Fails with ErrBadRequest if id
// is already populated, email/phone collide with an existing account,
// or any enum value is invalid.
func (st *Store) Insert(in AccountInput) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if in.ID == nil || in.Email == nil || in.Sex == nil || in.Status == nil || in.Birth == nil || in.Joined == nil {
		return ErrBadRequest
	}
	id := *in.ID
	if id <= 0 {
		return ErrBadRequest
	}
	if existing := st.getLocked(id); existing != nil {
		return ErrBadRequest
	}
	if _, exists := st.Indexes.KnownEmails[*in.Email]; exists || *in.Email == "" {
		return ErrBadRequest
	}
	sexCode, ok := st.validSex(*in.Sex)
	if !ok {
		return ErrBadRequest
	}
	statusCode, ok := st.validStatus(*in.Status)
	if !ok {
		return ErrBadRequest
	}

	var phone Phone
	hasPhone := false
	if in.Phone != nil && *in.Phone != "" {
		p, ok := ParsePhone(*in.Phone)
		if !ok {
			return ErrBadRequest
		}
		if _, exists := st.Indexes.KnownPhones[phoneCodeNumber{p.Code, p.Number}]; exists {
			return ErrBadRequest
		}
		phone, hasPhone = p, true
	}

	acc := &Account{
		ID:            id,
		Email:         *in.Email,
		Sex:           sexCode,
		Status:        statusCode,
		HasPhone:      hasPhone,
		Phone:         phone,
		Birth:         *in.Birth,
		Joined:        *in.Joined,
		PremiumStart:  NullDate,
		PremiumFinish: NullDate,
	}
	if in.FName != nil {
		acc.FName = st.Dict.GetKey(*in.FName)
	}
	if in.SName != nil {
		acc.SName = st.Dict.GetKey(*in.SName)
	}
	if in.Country != nil {
		acc.Country = st.Dict.GetKey(*in.Country)
	}
	if in.City != nil {
		acc.City = st.Dict.GetKey(*in.City)
	}
	if in.PremiumStart != nil {
		acc.PremiumStart = *in.PremiumStart
	}
	if in.PremiumFinish != nil {
		acc.PremiumFinish = *in.PremiumFinish
	}
	if len(in.Interests) > 0 {
		ids := make([]int, 0, len(in.Interests))
		for _, name := range in.Interests {
			ids = append(ids, int(st.InterestDict.GetKey(name)))
		}
		acc.Interests = InterestSetFromList(ids)
	}

	acc.recomputeDerived(st.Now, st.Consts.statusRank)

	st.grow(id)
	st.Accounts[id] = acc
	if id > st.MaxID {
		st.MaxID = id
	}
	st.addToIndexes(acc)

	for _, l := range in.Likes {
		st.applyLike(id, l.ID, l.Ts)
	}

	return nil
}

// Patch applies a partial update to an existing account. Fails with
// ErrNotFound if id does not exist, ErrBadRequest on a duplicate
// email/phone (excluding the record's own current value) or an
// invalid enum. Mutation is transactional: validation completes fully
// before any index or field is touched.
func (st *Store) Patch(id int32, in AccountInput) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	acc := st.getLocked(id)
	if acc == nil {
		return ErrNotFound
	}

	var newEmail *string
	if in.Email != nil {
		if *in.Email == "" {
			return ErrBadRequest
		}
		if *in.Email != acc.Email {
			if _, exists := st.Indexes.KnownEmails[*in.Email]; exists {
				return ErrBadRequest
			}
		}
		newEmail = in.Email
	}

	var newSex *int32
	if in.Sex != nil {
		code, ok := st.validSex(*in.Sex)
		if !ok {
			return ErrBadRequest
		}
		newSex = &code
	}

	var newStatus *int32
	if in.Status != nil {
		code, ok := st.validStatus(*in.Status)
		if !ok {
			return ErrBadRequest
		}
		newStatus = &code
	}

	var newPhone *Phone
	var clearPhone bool
	if in.Phone != nil {
		if *in.Phone == "" {
			clearPhone = true
		} else {
			p, ok := ParsePhone(*in.Phone)
			if !ok {
				return ErrBadRequest
			}
			if !acc.HasPhone || p != acc.Phone {
				if _, exists := st.Indexes.KnownPhones[phoneCodeNumber{p.Code, p.Number}]; exists {
					return ErrBadRequest
				}
			}
			newPhone = &p
		}
	}

	// Validation complete: subtract old index memberships, mutate,
	// recompute derived fields, then re-add.
	st.removeFromIndexes(acc)

	if newEmail != nil {
		acc.Email = *newEmail
	}
	if newSex != nil {
		acc.Sex = *newSex
	}
	if newStatus != nil {
		acc.Status = *newStatus
	}
	if in.FName != nil {
		acc.FName = st.Dict.GetKey(*in.FName)
	}
	if in.SName != nil {
		acc.SName = st.Dict.GetKey(*in.SName)
	}
	if in.Country != nil {
		acc.Country = st.Dict.GetKey(*in.Country)
	}
	if in.City != nil {
		acc.City = st.Dict.GetKey(*in.City)
	}
	if in.Birth != nil {
		acc.Birth = *in.Birth
	}
	if in.Joined != nil {
		acc.Joined = *in.Joined
	}
	if in.PremiumStart != nil {
		acc.PremiumStart = *in.PremiumStart
	}
	if in.PremiumFinish != nil {
		acc.PremiumFinish = *in.PremiumFinish
	}
	if clearPhone {
		acc.HasPhone = false
		acc.Phone = Phone{}
	} else if newPhone != nil {
		acc.HasPhone = true
		acc.Phone = *newPhone
	}
	if in.Interests != nil {
		ids := make([]int, 0, len(in.Interests))
		for _, name := range in.Interests {
			ids = append(ids, int(st.InterestDict.GetKey(name)))
		}
		acc.Interests = InterestSetFromList(ids)
	}

	acc.recomputeDerived(st.Now, st.Consts.statusRank)
	st.addToIndexes(acc)

	for _, l := range in.Likes {
		st.applyLike(id, l.ID, l.Ts)
	}

	return nil
}

// AppendLikeTriple is one (liker, likee, ts) entry of an AppendLikes
// request.
type AppendLikeTriple struct {
	Liker, Likee int32
	Ts           int32
}

// AppendLikes validates that every liker and likee in triples exists,
// then applies all of them. Any unknown id fails the whole batch with
// ErrBadRequest and no partial effect.
func (st *Store) AppendLikes(triples []AppendLikeTriple) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, t := range triples {
		if st.getLocked(t.Liker) == nil || st.getLocked(t.Likee) == nil {
			return ErrBadRequest
		}
	}
	for _, t := range triples {
		st.applyLike(t.Liker, t.Likee, t.Ts)
	}
	return nil
}

// applyLike adds likee to liker.Likes (sorted, unique; sending the
// same triple twice grows Likes by at most one entry) and files a Like
// in the likes index under likee, keyed by liker's sex (duplicates
// tolerated there, merged at SUGGEST read time).
func (st *Store) applyLike(liker, likee, ts int32) {
	l := st.Accounts[liker]
	if l == nil {
		return
	}
	l.Likes = insertSorted(l.Likes, likee)
	slot := st.sexSlot(l.Sex)
	st.Indexes.addLike(slot, likee, liker, ts)
}

func (st *Store) validSex(s string) (int32, bool) {
	code, ok := st.Dict.GetExistingKey(s)
	if !ok || (code != st.Consts.Male && code != st.Consts.Female) {
		return 0, false
	}
	return code, true
}

func (st *Store) validStatus(s string) (int32, bool) {
	code, ok := st.Dict.GetExistingKey(s)
	if !ok {
		return 0, false
	}
	if code != st.Consts.FreeStatus && code != st.Consts.HardStatus && code != st.Consts.TakenStatus {
		return 0, false
	}
	return code, true
}
