// Package service contains the application's orchestration layer. Services
// coordinate stores, generators and transactions, exposing the operations the
// API handlers call.
package service
