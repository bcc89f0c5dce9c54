// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package engine

import "testing"

func strp(s string) *string { return &s }
func i32p(v int32) *int32   { return &v }

func baseInsert(id int32, email string) AccountInput {
	return AccountInput{
		ID:     i32p(id),
		Email:  strp(email),
		Sex:    strp("m"),
		Status: strp(StatusFree),
		Birth:  i32p(0),
		Joined: i32p(0),
	}
}

func TestInsertRequiresMandatoryFields(t *testing.T) {
	st := NewStore(10, 0)
	in := AccountInput{ID: i32p(1), Email: strp("a@example.com")}
	if err := st.Insert(in); err != ErrBadRequest {
		t.Fatalf("Insert with missing fields = %v, want ErrBadRequest", err)
	}
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	st := NewStore(10, 0)
	if err := st.Insert(baseInsert(1, "a@example.com")); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	if err := st.Insert(baseInsert(1, "b@example.com")); err != ErrBadRequest {
		t.Fatalf("duplicate id Insert = %v, want ErrBadRequest", err)
	}
}

func TestInsertRejectsDuplicateEmail(t *testing.T) {
	st := NewStore(10, 0)
	if err := st.Insert(baseInsert(1, "a@example.com")); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	if err := st.Insert(baseInsert(2, "a@example.com")); err != ErrBadRequest {
		t.Fatalf("duplicate email Insert = %v, want ErrBadRequest", err)
	}
}

func TestInsertRejectsDuplicatePhone(t *testing.T) {
	st := NewStore(10, 0)
	in1 := baseInsert(1, "a@example.com")
	in1.Phone = strp("8(916)1234567")
	if err := st.Insert(in1); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	in2 := baseInsert(2, "b@example.com")
	in2.Phone = strp("8(916)1234567")
	if err := st.Insert(in2); err != ErrBadRequest {
		t.Fatalf("duplicate phone Insert = %v, want ErrBadRequest", err)
	}
}

func TestInsertRejectsInvalidEnum(t *testing.T) {
	st := NewStore(10, 0)
	in := baseInsert(1, "a@example.com")
	in.Sex = strp("x")
	if err := st.Insert(in); err != ErrBadRequest {
		t.Fatalf("invalid sex Insert = %v, want ErrBadRequest", err)
	}
}

func TestInsertThenGet(t *testing.T) {
	st := NewStore(10, 0)
	in := baseInsert(1, "a@example.com")
	in.Interests = []string{"skiing", "books"}
	if err := st.Insert(in); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	acc := st.Get(1)
	if acc == nil {
		t.Fatal("Get(1) = nil after Insert")
	}
	if acc.Email != "a@example.com" {
		t.Errorf("Email = %q, want a@example.com", acc.Email)
	}
	if acc.Interests.Count() != 2 {
		t.Errorf("Interests.Count() = %d, want 2", acc.Interests.Count())
	}
}

func TestPatchUnknownIDFails(t *testing.T) {
	st := NewStore(10, 0)
	if err := st.Patch(99, AccountInput{Email: strp("x@example.com")}); err != ErrNotFound {
		t.Fatalf("Patch of unknown id = %v, want ErrNotFound", err)
	}
}

func TestPatchRejectsDuplicateEmailButAllowsOwnEmail(t *testing.T) {
	st := NewStore(10, 0)
	mustInsert(t, st, baseInsert(1, "a@example.com"))
	mustInsert(t, st, baseInsert(2, "b@example.com"))

	if err := st.Patch(2, AccountInput{Email: strp("a@example.com")}); err != ErrBadRequest {
		t.Fatalf("Patch to colliding email = %v, want ErrBadRequest", err)
	}
	if err := st.Patch(1, AccountInput{Email: strp("a@example.com")}); err != nil {
		t.Fatalf("Patch to own existing email should be a no-op success, got %v", err)
	}
}

func TestPatchIsTransactionalOnValidationFailure(t *testing.T) {
	st := NewStore(10, 0)
	mustInsert(t, st, baseInsert(1, "a@example.com"))
	mustInsert(t, st, baseInsert(2, "b@example.com"))

	before := *st.Get(2)
	err := st.Patch(2, AccountInput{Email: strp("a@example.com"), FName: strp("Changed")})
	if err != ErrBadRequest {
		t.Fatalf("Patch = %v, want ErrBadRequest", err)
	}
	after := st.Get(2)
	if after.FName != before.FName || after.Email != before.Email {
		t.Errorf("Patch mutated account despite failing validation: before=%+v after=%+v", before, *after)
	}
}

func TestPatchUpdatesDerivedFields(t *testing.T) {
	st := NewStore(10, 100)
	mustInsert(t, st, baseInsert(1, "a@example.com"))

	if err := st.Patch(1, AccountInput{PremiumStart: i32p(0), PremiumFinish: i32p(200)}); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	acc := st.Get(1)
	if !acc.IsPremium {
		t.Error("IsPremium = false, want true after granting an active premium window")
	}
	if acc.RecommendOrder != statusRankFree {
		t.Errorf("RecommendOrder = %d, want %d", acc.RecommendOrder, statusRankFree)
	}
}

func TestAppendLikesRejectsUnknownParticipant(t *testing.T) {
	st := NewStore(10, 0)
	mustInsert(t, st, baseInsert(1, "a@example.com"))

	err := st.AppendLikes([]AppendLikeTriple{{Liker: 1, Likee: 99, Ts: 10}})
	if err != ErrBadRequest {
		t.Fatalf("AppendLikes with unknown likee = %v, want ErrBadRequest", err)
	}
	if len(st.Get(1).Likes) != 0 {
		t.Error("AppendLikes partially applied despite a failing triple in the batch")
	}
}

func TestAppendLikesAppliesAllAndDedupsLikes(t *testing.T) {
	st := NewStore(10, 0)
	mustInsert(t, st, baseInsert(1, "a@example.com"))
	mustInsert(t, st, baseInsert(2, "b@example.com"))

	triples := []AppendLikeTriple{
		{Liker: 1, Likee: 2, Ts: 10},
		{Liker: 1, Likee: 2, Ts: 20},
	}
	if err := st.AppendLikes(triples); err != nil {
		t.Fatalf("AppendLikes failed: %v", err)
	}
	likes := st.Get(1).Likes
	if len(likes) != 1 || likes[0] != 2 {
		t.Errorf("Likes = %v, want [2] (repeated likee dedups in the liker's own vector)", likes)
	}
}

func mustInsert(t *testing.T, st *Store, in AccountInput) {
	t.Helper()
	if err := st.Insert(in); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
}
