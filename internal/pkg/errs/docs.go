// Package errs provides standardized error types for the delivery coordination service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers both generic validation failures and the domain outcomes the
// order lifecycle produces as normal control flow:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: an entity could not be located
//   - VersionIsInvalidError: optimistic concurrency conflict
//   - InsufficientFundsError: available balance cannot cover an operation
//   - InvalidTransitionError: order state machine rejected a transition
//   - OrderNotAvailableError: lost acceptance race on a waiting order
//   - ForbiddenError / ConflictError / LocationUnavailableError: access, uniqueness,
//     and courier-presence failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInsufficientFunds)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// Callers branch on sentinels, never on message text; the HTTP adapter maps the
// sentinels to status codes in one place.
package errs
