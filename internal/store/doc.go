// Package store defines persistence interfaces for the account domain,
// shared sentinel errors, and transaction plumbing. Implementations live in
// internal/platform/postgres.
package store
