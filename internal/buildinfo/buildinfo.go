// Package buildinfo carries the version string reported by --version on
// both CLIs.
package buildinfo

// Version is Ember's build version.
const Version = "0.1.0"
