// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the flashcard service, translating HTTP concerns to service calls and
// service errors to status codes.
package api
