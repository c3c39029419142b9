// Package store defines the interfaces for task and user persistence.
// These interfaces abstract the underlying database from the handlers,
// and encode the ownership rule: every task read or mutation carries the
// owning user's identity as part of its predicate.
package store
