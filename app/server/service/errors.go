package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateMember    = errors.New("member already exists")
	ErrNotFoundMember     = errors.New("member not found")
)
