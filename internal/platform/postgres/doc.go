// Package postgres provides the PostgreSQL implementations of the store
// interfaces defined in internal/store. It handles query construction,
// execution, and mapping between domain entities and database rows,
// including the translation of driver errors to store sentinel errors.
package postgres
