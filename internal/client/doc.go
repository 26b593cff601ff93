// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault command-line client.
//
// Every command that touches stored items asks for the master password,
// derives the record key against the server-held salt and locks the vault
// again before returning. Records are sealed and opened locally; the server
// only ever sees encrypted blobs.
package client
