package order

import (
	"fmt"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
)

// Stage represents one discrete phase of order fulfilment.
// It implements a strictly linear state machine with no branching:
//
//	COOKING ──> PACKAGING ──> DELIVERY ──> COMPLETED
//
// COMPLETED is a terminal marker: Next() never advances past it. The
// orchestrator itself does not enforce this ordering when a stage is started
// directly by restaurant staff; ordering is enforced by the workflow engine
// when it is self-driving.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// StageCooking is the initial stage, entered when the workflow starts.
	StageCooking

	// StagePackaging follows cooking.
	StagePackaging

	// StageDelivery follows packaging.
	StageDelivery

	// StageCompleted is the terminal marker. It is not a work stage: no
	// stage record is ever created for it.
	StageCompleted
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:   "UNKNOWN",
		StageCooking:   "COOKING",
		StagePackaging: "PACKAGING",
		StageDelivery:  "DELIVERY",
		StageCompleted: "COMPLETED",
	}
}

func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // StageUnknown is intentionally excluded as it's invalid
	return map[Stage]string{
		StageCooking:   "COOKING",
		StagePackaging: "PACKAGING",
		StageDelivery:  "DELIVERY",
		StageCompleted: "COMPLETED",
	}
}

// StageFromString parses the wire form of a stage ("COOKING", "PACKAGING",
// "DELIVERY", "COMPLETED"). Returns a ValueIsInvalidError for anything else,
// including the empty string.
func StageFromString(name string) (Stage, error) {
	if name == "" {
		return StageUnknown, errs.NewValueIsRequiredError("stage")
	}

	for stage, str := range getValidStageStrings() {
		if str == name {
			return stage, nil
		}
	}

	return StageUnknown, errs.NewValueIsInvalidErrorWithCause(
		"stage",
		fmt.Errorf("%s is not a known stage", name),
	)
}

// Validate checks that the Stage value is one of the defined stages.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%d is not a valid stage", s),
		)
	}
	return nil
}

// String returns the wire form of the stage. Implements fmt.Stringer and is
// safe to call on any Stage value, including invalid ones.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Next returns the stage that follows this one in the fixed sequence.
// The function is total on valid stages: repeated application from COOKING
// reaches COMPLETED in exactly three steps, and COMPLETED maps to itself.
//
// Example:
//
//	next := order.StageCooking.Next() // StagePackaging
func (s Stage) Next() Stage {
	switch s {
	case StageCooking:
		return StagePackaging
	case StagePackaging:
		return StageDelivery
	case StageDelivery:
		return StageCompleted
	case StageCompleted:
		return StageCompleted
	default:
		return StageUnknown
	}
}

// IsTerminal reports whether the stage is the terminal COMPLETED marker.
func (s Stage) IsTerminal() bool {
	return s == StageCompleted
}
