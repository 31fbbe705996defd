package database

import "errors"

var (
	// ErrNotFound covers both "record absent" and "record owned by someone
	// else"; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrAlreadySubmitted = errors.New("order already submitted")
	ErrNotSubmitted     = errors.New("only submitted orders can be revoked")
	ErrOrderPaid        = errors.New("paid orders cannot be revoked")
)
