// Package errs provides standardized error types for the dispatch service.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired) for errors.Is checks
//   - A struct type carrying the offending parameter and an optional cause
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but unusable
//   - ObjectNotFoundError: a looked-up object does not exist
//   - ObjectAlreadyExistsError: an object with the same identity already exists
package errs
