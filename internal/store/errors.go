package store

import "errors"

// Sentinel errors returned by storage methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrVaultItemNotFound is returned when no item matches (id, owner).
	ErrVaultItemNotFound = errors.New("vault item was not found")

	// ErrVaultItemAlreadyExists is returned when an insert collides with an
	// existing id.
	ErrVaultItemAlreadyExists = errors.New("vault item already exists")

	// ErrUnsupportedDriver is returned by NewStorages for an unknown driver.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)

// Low-level database operation errors, wrapped together with the driver
// error.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT or RETURNING query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan vault item row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan vault item rows")
)
