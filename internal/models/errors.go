package models

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every construction-time validation error.
var ErrValidation = errors.New("validation failed")

var (
	ErrNameRequired       = fmt.Errorf("%w: name is required", ErrValidation)
	ErrBucketlistRequired = fmt.Errorf("%w: bucketlist id is required", ErrValidation)
	ErrUsernameRequired   = fmt.Errorf("%w: username is required", ErrValidation)
	ErrPasswordRequired   = fmt.Errorf("%w: password is required", ErrValidation)
)
