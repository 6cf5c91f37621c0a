package domain

import "errors"

var ErrUnauthenticated = errors.New("admin session required")
