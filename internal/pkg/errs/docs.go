// Package errs provides standardized error types for the order workflow
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes error types for the common failure modes:
//   - ValueIsRequiredError: a required value is missing (validation failures)
//   - ValueIsInvalidError: a value is present but invalid
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ObjectNotFoundError: a requested object does not exist
//   - ObjectAlreadyExistsError: a conflicting object already exists
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// The HTTP adapter relies on the sentinels to map domain failures to status
// codes: ValueIsRequired/ValueIsInvalid -> 400, ObjectNotFound -> 404,
// ObjectAlreadyExists -> 409, everything else -> 500.
package errs
