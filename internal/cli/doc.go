// Package cli turns command-line flags and FORGEGO_* environment variables
// into an app.Config and maps failures to exit codes.
package cli
