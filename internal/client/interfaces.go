// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command line and returns the first error.
	Run() error
}

// Prompter reads a secret without echoing it.
type Prompter interface {
	ReadSecret(prompt string) (string, error)
}
