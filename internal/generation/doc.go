// Package generation produces worksheet content from pedagogical parameters.
// It defines the Generator interface implemented by both the deterministic
// template engine and the remote chat-completion client, plus the fallback
// orchestration that prefers the remote path and degrades to the template
// path on any remote failure.
package generation
