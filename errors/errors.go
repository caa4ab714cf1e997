package errors

import "fmt"

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrSourceUnavailable = fmt.Errorf("source unavailable")
	ErrPersistenceFailed = fmt.Errorf("persistence failed")
	ErrNoSession         = fmt.Errorf("no active session")
)
