// Package domain contains the core business entities and validation logic
// of the application: users, the tasks they own, and the filter and patch
// value types the stores operate on. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
