package service

import "errors"

var (
	ErrValidation                = errors.New("validation")                  // 400
	ErrDuplicateEmail            = errors.New("email already exists")        // 400
	ErrNotFound                  = errors.New("not found")                   // 404
	ErrInvalidPassword           = errors.New("invalid password")            // 400
	ErrForbidden                 = errors.New("forbidden")                   // 403
	ErrCancellationWindowExpired = errors.New("cancellation window expired") // 400
	ErrPriceMismatch             = errors.New("total price mismatch")        // 400
)
