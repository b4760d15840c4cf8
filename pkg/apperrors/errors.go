package apperrors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnsupportedAdapter = errors.New("unsupported datasource type")
)
