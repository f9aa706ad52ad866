// Package domain contains the core entities of the storefront account
// service: users with roles, customers (registered or anonymous), typed
// addresses, bank accounts, and social connections. Entities validate
// themselves; persistence and serialization live elsewhere.
package domain
