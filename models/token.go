package models

import "time"

// TokenKeyLength is the length of a hex-encoded token key.
const TokenKeyLength = 40

// Token is an opaque authentication credential bound to exactly one user.
// A user has at most one live token at any time.
type Token struct {
	// Key is the 40-character lowercase hex credential sent by clients as
	// "Authorization: Token <key>".
	Key string `json:"token"`

	// UserID is the owner of the token.
	UserID int64 `json:"-"`

	// Created is the issue timestamp.
	Created time.Time `json:"-"`
}

// String returns the token key.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.Key
}
