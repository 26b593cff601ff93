// Package config provides configuration loading, merging, and validation
// for the vault server and CLI client.
//
// Configuration is assembled from multiple sources; higher entries override
// non-zero fields of lower ones:
//  1. Command-line flags (server) or cobra flag overrides (client)
//  2. Environment variables
//  3. JSON config file named by CONFIG or -c/-config
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
