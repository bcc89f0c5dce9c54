// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package models holds the wire (JSON) representations exchanged with
// clients. These are deliberately separate from internal/engine's Account:
// the engine works with dictionary-coded integers and bitsets, while
// models works with the strings and arrays clients send and expect back.
package models

// LikeJSON is one entry of an account's likes array, or of the body of
// POST /accounts/likes/.
type LikeJSON struct {
	ID int32 `json:"id"`
	Ts int32 `json:"ts"`
}

// PremiumJSON is the optional premium-window object embedded in AccountJSON.
type PremiumJSON struct {
	Start  int32 `json:"start"`
	Finish int32 `json:"finish"`
}

// AccountJSON is the full wire representation of an account, used for the
// data.zip startup payload and as the body of POST /accounts/new/.
//
// Fields are pointers so that absent JSON keys decode to nil rather than
// zero values; the engine distinguishes "not supplied" from "set to the
// zero value" on every optional field.
type AccountJSON struct {
	ID        int32        `json:"id" validate:"required"`
	Email     string       `json:"email" validate:"required,email"`
	FName     *string      `json:"fname,omitempty"`
	SName     *string      `json:"sname,omitempty"`
	Phone     *string      `json:"phone,omitempty"`
	Sex       *string      `json:"sex,omitempty" validate:"required,oneof=m f"`
	Birth     *int32       `json:"birth,omitempty" validate:"required"`
	Country   *string      `json:"country,omitempty"`
	City      *string      `json:"city,omitempty"`
	Joined    *int32       `json:"joined,omitempty" validate:"required"`
	Status    *string      `json:"status,omitempty" validate:"required,oneof=free complicated taken"`
	Interests []string     `json:"interests,omitempty"`
	Premium   *PremiumJSON `json:"premium,omitempty"`
	Likes     []LikeJSON   `json:"likes,omitempty"`
}

// AccountsJSON wraps a batch of accounts, the shape each file inside
// data.zip is expected to decode to.
type AccountsJSON struct {
	Accounts []AccountJSON `json:"accounts"`
}

// PatchJSON is the body of POST /accounts/<id>/: every field optional,
// present keys overwrite, absent keys leave the stored value untouched.
type PatchJSON struct {
	Email     *string      `json:"email,omitempty"`
	FName     *string      `json:"fname,omitempty"`
	SName     *string      `json:"sname,omitempty"`
	Phone     *string      `json:"phone,omitempty"`
	Sex       *string      `json:"sex,omitempty" validate:"omitempty,oneof=m f"`
	Birth     *int32       `json:"birth,omitempty"`
	Country   *string      `json:"country,omitempty"`
	City      *string      `json:"city,omitempty"`
	Joined    *int32       `json:"joined,omitempty"`
	Status    *string      `json:"status,omitempty" validate:"omitempty,oneof=free complicated taken"`
	Interests []string     `json:"interests,omitempty"`
	Premium   *PremiumJSON `json:"premium,omitempty"`
}

// LikesJSON is the body of POST /accounts/likes/.
type LikesJSON struct {
	Likes []LikeTripleJSON `json:"likes" validate:"required,min=1,dive"`
}

// LikeTripleJSON is one entry of LikesJSON.Likes.
type LikeTripleJSON struct {
	Liker int32 `json:"liker"`
	Likee int32 `json:"likee"`
	Ts    int32 `json:"ts"`
}

// FilterResultJSON is the body of GET /accounts/filter/.
type FilterResultJSON struct {
	Accounts []ProjectedAccountJSON `json:"accounts"`
}

// ProjectedAccountJSON is one entry of FilterResultJSON.Accounts: only
// fields touched by the query's predicates are populated (email and id
// are always present).
type ProjectedAccountJSON struct {
	ID        int32        `json:"id"`
	Email     string       `json:"email"`
	FName     *string      `json:"fname,omitempty"`
	SName     *string      `json:"sname,omitempty"`
	Phone     *string      `json:"phone,omitempty"`
	Sex       *string      `json:"sex,omitempty"`
	Birth     *int32       `json:"birth,omitempty"`
	Country   *string      `json:"country,omitempty"`
	City      *string      `json:"city,omitempty"`
	Status    *string      `json:"status,omitempty"`
	Premium   *PremiumJSON `json:"premium,omitempty"`
}

// GroupResultJSON is the body of GET /accounts/group/.
type GroupResultJSON struct {
	Groups []GroupJSON `json:"groups"`
}

// GroupJSON is one aggregated group entry: only the grouping keys named
// in the `keys` query parameter are populated, alongside the count.
type GroupJSON struct {
	Sex       *string `json:"sex,omitempty"`
	Status    *string `json:"status,omitempty"`
	Country   *string `json:"country,omitempty"`
	City      *string `json:"city,omitempty"`
	Interests *string `json:"interests,omitempty"`
	Count     int32   `json:"count"`
}

// RecommendResultJSON is the body of GET /accounts/<id>/recommend/.
type RecommendResultJSON struct {
	Accounts []RecommendAccountJSON `json:"accounts"`
}

// RecommendAccountJSON is one recommended candidate.
type RecommendAccountJSON struct {
	ID      int32        `json:"id"`
	Email   string       `json:"email"`
	Status  *string      `json:"status,omitempty"`
	FName   *string      `json:"fname,omitempty"`
	SName   *string      `json:"sname,omitempty"`
	Birth   *int32       `json:"birth,omitempty"`
	Premium *PremiumJSON `json:"premium,omitempty"`
}

// SuggestResultJSON is the body of GET /accounts/<id>/suggest/.
type SuggestResultJSON struct {
	Accounts []SuggestAccountJSON `json:"accounts"`
}

// SuggestAccountJSON is one suggested candidate.
type SuggestAccountJSON struct {
	ID     int32   `json:"id"`
	Email  string  `json:"email"`
	Status *string `json:"status,omitempty"`
	FName  *string `json:"fname,omitempty"`
	SName  *string `json:"sname,omitempty"`
}
