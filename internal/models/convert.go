// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package models

import "github.com/stremin/accountengine/internal/engine"

// ToInsertInput converts a decoded AccountJSON into the engine's mutation
// payload. Nil pointers pass through unchanged so the engine can tell
// "absent" from "explicitly zero".
func (a *AccountJSON) ToInsertInput() engine.AccountInput {
	in := engine.AccountInput{
		ID:            &a.ID,
		Email:         &a.Email,
		Sex:           a.Sex,
		Status:        a.Status,
		FName:         a.FName,
		SName:         a.SName,
		Phone:         a.Phone,
		Birth:         a.Birth,
		Joined:        a.Joined,
		Country:       a.Country,
		City:          a.City,
		Interests:     a.Interests,
	}
	if a.Premium != nil {
		in.PremiumStart = &a.Premium.Start
		in.PremiumFinish = &a.Premium.Finish
	}
	for _, l := range a.Likes {
		in.Likes = append(in.Likes, engine.LikeInput{ID: l.ID, Ts: l.Ts})
	}
	return in
}

// ToPatchInput converts a decoded PatchJSON into the engine's mutation
// payload. ID and Email are left nil unless Email was supplied, so the
// engine's "leave untouched when absent" semantics fall out naturally.
func (p *PatchJSON) ToPatchInput() engine.AccountInput {
	in := engine.AccountInput{
		Email:     p.Email,
		Sex:       p.Sex,
		Status:    p.Status,
		FName:     p.FName,
		SName:     p.SName,
		Phone:     p.Phone,
		Birth:     p.Birth,
		Joined:    p.Joined,
		Country:   p.Country,
		City:      p.City,
		Interests: p.Interests,
	}
	if p.Premium != nil {
		in.PremiumStart = &p.Premium.Start
		in.PremiumFinish = &p.Premium.Finish
	}
	return in
}

// ToAppendTriples converts a decoded LikesJSON body into the engine's
// append-likes payload.
func (l *LikesJSON) ToAppendTriples() []engine.AppendLikeTriple {
	out := make([]engine.AppendLikeTriple, len(l.Likes))
	for i, t := range l.Likes {
		out[i] = engine.AppendLikeTriple{Liker: t.Liker, Likee: t.Likee, Ts: t.Ts}
	}
	return out
}

func premiumFromView(v *engine.PremiumView) *PremiumJSON {
	if v == nil {
		return nil
	}
	return &PremiumJSON{Start: v.Start, Finish: v.Finish}
}

// FilterResultFrom converts the engine's FILTER projection into the wire
// response shape.
func FilterResultFrom(accounts []*engine.ProjectedAccount) FilterResultJSON {
	out := FilterResultJSON{Accounts: make([]ProjectedAccountJSON, len(accounts))}
	for i, p := range accounts {
		out.Accounts[i] = ProjectedAccountJSON{
			ID:      p.ID,
			Email:   p.Email,
			FName:   p.FName,
			SName:   p.SName,
			Phone:   p.Phone,
			Sex:     p.Sex,
			Birth:   p.Birth,
			Country: p.Country,
			City:    p.City,
			Status:  p.Status,
			Premium: premiumFromView(p.Premium),
		}
	}
	return out
}

// GroupResultFrom converts the engine's GROUP result into the wire
// response shape.
func GroupResultFrom(gr *engine.GroupsResult) GroupResultJSON {
	out := GroupResultJSON{Groups: make([]GroupJSON, len(gr.Groups))}
	for i, g := range gr.Groups {
		out.Groups[i] = GroupJSON{
			Sex:       g.Sex,
			Status:    g.Status,
			Country:   g.Country,
			City:      g.City,
			Interests: g.Interests,
			Count:     g.Count,
		}
	}
	return out
}

// RecommendResultFrom converts the engine's RECOMMEND result into the
// wire response shape.
func RecommendResultFrom(accounts []*engine.RecommendAccount) RecommendResultJSON {
	out := RecommendResultJSON{Accounts: make([]RecommendAccountJSON, len(accounts))}
	for i, a := range accounts {
		out.Accounts[i] = RecommendAccountJSON{
			ID:      a.ID,
			Email:   a.Email,
			Status:  a.Status,
			FName:   a.FName,
			SName:   a.SName,
			Birth:   a.Birth,
			Premium: premiumFromView(a.Premium),
		}
	}
	return out
}

// SuggestResultFrom converts the engine's SUGGEST result into the wire
// response shape.
func SuggestResultFrom(accounts []*engine.SuggestAccount) SuggestResultJSON {
	out := SuggestResultJSON{Accounts: make([]SuggestAccountJSON, len(accounts))}
	for i, a := range accounts {
		out.Accounts[i] = SuggestAccountJSON{
			ID:     a.ID,
			Email:  a.Email,
			Status: a.Status,
			FName:  a.FName,
			SName:  a.SName,
		}
	}
	return out
}
