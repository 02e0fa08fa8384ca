package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrAutoCloseFailed = errors.New("auto-close failed")
)

// ValidationError: id tidak valid, ditolak sebelum akses store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// AutoCloseFailedError: penutupan otomatis record basi gagal, check-in baru TIDAK dibuat.
type AutoCloseFailedError struct {
	RecordID  int64
	CheckInAt string
	Err       error
}

func (e *AutoCloseFailedError) Error() string {
	return fmt.Sprintf("auto-close of attendance %d (check-in %s) failed: %v", e.RecordID, e.CheckInAt, e.Err)
}

func (e *AutoCloseFailedError) Unwrap() error { return e.Err }

func (e *AutoCloseFailedError) Is(target error) bool { return target == ErrAutoCloseFailed }
