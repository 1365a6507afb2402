// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/go-chi/chi/v5"
)

// allowOrder fixes the order of methods in the Allow header.
var allowOrder = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// The handler walks the registered routes with [chi.Walk], collects the
// methods of every route pattern matching the requested path, lists them in
// the Allow header and responds with 405 and a JSON {"detail": ...} body.
// Mount points of sub-routers are not routes and never contribute methods.
//
// Usage:
//
//	router := chi.NewRouter()
//	router.MethodNotAllowed(CheckHTTPMethod(router))
//	// ... register routes ...
func CheckHTTPMethod(router chi.Routes) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if allowed := allowedMethods(router, r.URL.Path); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		utils.WriteJSON(w, detailResponse{Detail: fmt.Sprintf("Method %q not allowed.", r.Method)}, http.StatusMethodNotAllowed)
	}
}

func allowedMethods(router chi.Routes, path string) []string {
	found := make(map[string]bool)
	_ = chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if matchPattern(route, path) {
			found[method] = true
		}
		return nil
	})

	allowed := make([]string, 0, len(found))
	for _, method := range allowOrder {
		if found[method] {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// matchPattern reports whether path matches a chi route pattern. A {param}
// segment matches any non-empty segment; a trailing * matches the rest.
func matchPattern(pattern, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	for i, part := range patternParts {
		if part == "*" && i == len(patternParts)-1 {
			return true
		}
		if i >= len(pathParts) {
			return false
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return len(patternParts) == len(pathParts)
}

// notFound answers unknown paths with a JSON body.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, detailResponse{Detail: "Not found."}, http.StatusNotFound)
}
