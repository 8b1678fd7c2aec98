package classmix

import "errors"

// ErrEmptyInput is returned when DivideStudents is called with no
// students.
var ErrEmptyInput = errors.New("classmix: no students provided")

// ErrInvalidConfiguration is returned by DivideStudents when a
// DivideConfig fails validation (it wraps the plain error from
// ValidateConfig in config_loader.go) or asks for more classes than
// there are students.
var ErrInvalidConfiguration = errors.New("classmix: invalid configuration")
