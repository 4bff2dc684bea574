package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWorkshopNotFound   = errors.New("workshop not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("user is already enrolled in this workshop")
	ErrPermissionDenied   = errors.New("permission denied")
)
