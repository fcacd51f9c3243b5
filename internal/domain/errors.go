package domain

import "errors"

var (
	ErrValidation        = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrLineNotFound      = errors.New("line not found in cart")
	ErrInvalidCoupon     = errors.New("unknown coupon code")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrTxnConflict       = errors.New("payment transaction id conflict")
)
