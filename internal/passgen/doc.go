// Package passgen generates random passwords and scores how strong a
// password looks.
//
// The strength score is a UI hint built from length and character classes.
// It is not an entropy estimate and plays no part in key derivation.
package passgen
