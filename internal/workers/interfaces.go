// Package workers runs short-lived background jobs of the CLI client, such as
// wiping a copied secret from the clipboard after a delay.
package workers

import "context"

// Worker is a background job. Run blocks until the job is done or ctx ends.
type Worker interface {
	Run(ctx context.Context) error
}

// Clipboard is the subset of the system clipboard the workers need.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}
