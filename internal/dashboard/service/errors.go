package service

import "errors"

var (
	ErrUnknownColumn = errors.New("unknown export column")
	ErrBulkNotReady  = errors.New("bulk operation has not completed yet")
)
