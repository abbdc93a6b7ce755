package service

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")      // 401
	ErrPermission   = errors.New("permission denied") // 403
	ErrNotFound     = errors.New("not found")         // 404
	ErrValidation   = errors.New("validation")        // 400
	ErrConflict     = errors.New("conflict")          // 409
)
