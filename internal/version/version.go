// Package version provides centralized version information for the contact
// service binaries. contactd and contactctl are versioned independently so the
// operator CLI can ship without redeploying the daemon.
// All versions follow semantic versioning (semver) conventions.
package version

// ContactdVersion holds the current contactd daemon version.
// Format: major.minor.patch[-prerelease][+build]
const ContactdVersion = "0.1.0-dev"

// ContactctlVersion holds the current contactctl CLI version.
// Format: major.minor.patch[-prerelease][+build]
const ContactctlVersion = "0.1.0-dev"
