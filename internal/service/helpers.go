package service

import (
	"fmt"
	"time"
)

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("seed validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

func nowOrDefault(now func() time.Time) func() time.Time {
	if now != nil {
		return now
	}
	return func() time.Time { return time.Now().UTC() }
}
