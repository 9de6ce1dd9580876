// Package exitcode defines process exit codes for the CLI.
package exitcode

const (
	// Success indicates the run completed.
	Success = 0

	// UsageError indicates bad or missing arguments.
	UsageError = 1

	// ListFetchError indicates the top-level list collection could not be
	// fetched.
	ListFetchError = 2

	// CredentialError indicates the source credential was rejected.
	CredentialError = 3
)
