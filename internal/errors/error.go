package errors

import (
	"errors"
)

var (
	ErrEmptyAuth        = errors.New("missing authorization")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrEmailExist       = errors.New("email already exist")
	ErrWeakPassword     = errors.New("password is too short")
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrUserNotFound     = errors.New("user not found")
	ErrForbidden        = errors.New("operation is not allowed for this role")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrStatusTransition = errors.New("order status transition is not allowed")
	ErrModerationState  = errors.New("product moderation status transition is not allowed")
)
