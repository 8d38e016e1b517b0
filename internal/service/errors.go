package service

import "errors"

// 业务错误，由 handler 映射为 HTTP 状态
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrNotMember     = errors.New("not a member of this community")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadCredential = errors.New("invalid username or password")
	ErrInvalidInput  = errors.New("invalid input")
)
