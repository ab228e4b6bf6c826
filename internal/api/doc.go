// Package api provides the HTTP handlers, request/response models, and
// error mapping for the public REST surface: registration, login, token
// refresh, the authenticated profile endpoint, and worksheet generation.
package api
