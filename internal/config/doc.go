// Package config defines the format-agnostic workspace model: the set of
// platforms whose builder dependency graphs the application builds, along
// with the Loader interface implemented by concrete formats such as HCL.
package config
