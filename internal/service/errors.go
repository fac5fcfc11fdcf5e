package service

import "errors"

// ErrNilDependency is returned by constructors when a required collaborator
// is missing.
var ErrNilDependency = errors.New("required dependency is nil")
