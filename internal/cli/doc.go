// Package cli turns the process arguments into an app.Config. Usage and
// validation errors come back as *ExitError carrying the exit status.
package cli
