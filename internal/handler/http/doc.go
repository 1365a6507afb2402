// Package http implements the HTTP transport layer of the project board API.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as token authentication, request tracing,
// access logging, CORS and response compression are handled in this package
// before requests are delegated to the service layer. Business rules live in
// the service layer; this package only decodes requests, maps errors to
// status codes and renders JSON.
package http
