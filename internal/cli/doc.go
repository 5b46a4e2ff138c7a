// Package cli turns the command line and the BLUEPRINT_* environment into
// an app.Config. Flags win over the process environment, which wins over
// the env file. Usage errors are reported as ExitError with exit code 2.
package cli
