// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, version tagging,
// HTTP response writing, JWT session token generation and validation, and
// other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// InstanceIDCtxKey is the key used to store the authenticated peer instance
// identifier in the context. Used together with GetInstanceIDFromContext for
// type-safe retrieval.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.InstanceIDCtxKey, "a2f4...")
var InstanceIDCtxKey = contextKey("instanceID")

// ScopeCtxKey is the key used to store the partition scope the current sync
// session is authorized for, taken from the session token.
var ScopeCtxKey = contextKey("scope")

// OperationsCtxKey is the key used to store the operations the current sync
// session may perform, taken from the session token.
var OperationsCtxKey = contextKey("operations")

// GetInstanceIDFromContext retrieves the peer instance identifier from the
// context.
//
// Returns the instance ID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetInstanceIDFromContext(ctx context.Context) (string, bool) {
	instanceID, ok := ctx.Value(InstanceIDCtxKey).(string)
	return instanceID, ok
}

// GetScopeFromContext retrieves the authorized partition scope from the
// context, with the same ok semantics as GetInstanceIDFromContext.
func GetScopeFromContext(ctx context.Context) (string, bool) {
	scope, ok := ctx.Value(ScopeCtxKey).(string)
	return scope, ok
}

// GetOperationsFromContext retrieves the session's delegated operations from
// the context, with the same ok semantics as GetInstanceIDFromContext.
func GetOperationsFromContext(ctx context.Context) ([]string, bool) {
	operations, ok := ctx.Value(OperationsCtxKey).([]string)
	return operations, ok
}
