// Package mocks provides hand-rolled test doubles for the store and
// service interfaces. Each mock exposes Fn fields to override behavior
// per test and falls back to simple default values.
package mocks
