package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/go-project-board/models"
)

// newPage wraps one page of results with absolute links to its neighbours.
func newPage[T any](r *http.Request, page models.PageRequest, count int64, results []T) models.Page[T] {
	if results == nil {
		results = []T{}
	}

	out := models.Page[T]{
		Count:   count,
		Results: results,
	}
	if page.HasNext(count) {
		next := pageURL(r, page.Number+1)
		out.Next = &next
	}
	if page.HasPrevious() {
		previous := pageURL(r, page.Number-1)
		out.Previous = &previous
	}
	return out
}

// pageURL rebuilds the request URL pointing at page number. The first page
// is addressed without the page parameter.
func pageURL(r *http.Request, number int) string {
	query := r.URL.Query()
	if number <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(number))
	}

	u := url.URL{
		Scheme:   requestScheme(r),
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
