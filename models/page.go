package models

import "math"

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// PageRequest selects one page of a listing. Number is 1-based.
type PageRequest struct {
	Number int
	Size   int
}

// Valid reports whether the page number is positive and the row range it
// selects fits in an int64.
func (p PageRequest) Valid() bool {
	if p.Number < 1 || p.Size < 1 {
		return false
	}
	return int64(p.Number) <= math.MaxInt64/int64(p.Size)
}

// Offset returns the number of rows to skip. Invalid requests skip nothing.
func (p PageRequest) Offset() uint64 {
	if !p.Valid() {
		return 0
	}
	return uint64(int64(p.Number-1) * int64(p.Size))
}

// Page is one page of a listing plus navigation links.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether a page follows the requested one.
func (p PageRequest) HasNext(count int64) bool {
	if !p.Valid() {
		return false
	}
	return int64(p.Number)*int64(p.Size) < count
}

// HasPrevious reports whether a page precedes the requested one.
func (p PageRequest) HasPrevious() bool {
	return p.Number > 1
}

// Exists reports whether the requested page is within bounds. The first page
// always exists, even for an empty listing.
func (p PageRequest) Exists(count int64) bool {
	if !p.Valid() {
		return false
	}
	return p.Number == 1 || int64(p.Number-1)*int64(p.Size) < count
}
