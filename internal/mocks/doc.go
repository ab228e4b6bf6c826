// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations are shared across test packages. Each mock
// exposes function fields for per-test behavior plus sensible map-backed
// defaults.
package mocks
