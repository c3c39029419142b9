// Package config handles configuration loading and validation from
// environment variables and an optional config file, providing type-safe
// access to server, database, and auth settings.
package config
