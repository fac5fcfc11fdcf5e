// Package domain contains the shared error vocabulary of the application.
// The blood pressure classification itself lives in the bloodpressure
// subpackage, independent of any delivery mechanism.
package domain
