// Package kernel contains shared value objects used across the domain model.
// These are the building blocks for aggregate identity: tenant and order
// identifiers and the composite key they form. All types in this package are
// immutable value objects constructed through factory functions that enforce
// validation.
package kernel
