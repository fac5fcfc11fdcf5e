// Package ciutil detects the CI environment the process runs in and exposes
// build identifiers that the logger attaches to records. It also masks
// credentials in connection strings before they are logged.
package ciutil
