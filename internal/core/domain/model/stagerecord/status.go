package stagerecord

import (
	"fmt"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
)

// Status is the lifecycle state of a stage record. A record is created
// IN_PROGRESS, flips to COMPLETED exactly once and is immutable afterward.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// InProgress means the stage has been started and not yet completed.
	InProgress

	// Completed means the stage finished. Final.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "UNKNOWN",
		InProgress:    "IN_PROGRESS",
		Completed:     "COMPLETED",
	}
}

// StatusFromString parses the wire form of a record status.
func StatusFromString(value string) (Status, error) {
	if value == "" {
		return StatusUnknown, errs.NewValueIsRequiredError("status")
	}

	for status, str := range getStatusStrings() {
		if str == value && status != StatusUnknown {
			return status, nil
		}
	}

	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid stage record status", value),
	)
}

// Validate checks that the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s != InProgress && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid stage record status", s),
		)
	}
	return nil
}

// String returns the wire form of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
