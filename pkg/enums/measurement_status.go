package enums

import "fmt"

// MeasurementStatus tracks a measurement record through its workflow.
type MeasurementStatus string

const (
	MeasurementStatusNew       MeasurementStatus = "new"
	MeasurementStatusScheduled MeasurementStatus = "scheduled"
	MeasurementStatusCompleted MeasurementStatus = "completed"
	MeasurementStatusTrash     MeasurementStatus = "trash"
)

var validMeasurementStatuses = []MeasurementStatus{
	MeasurementStatusNew,
	MeasurementStatusScheduled,
	MeasurementStatusCompleted,
	MeasurementStatusTrash,
}

// String implements fmt.Stringer.
func (m MeasurementStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MeasurementStatus.
func (m MeasurementStatus) IsValid() bool {
	for _, candidate := range validMeasurementStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMeasurementStatus converts raw input into a MeasurementStatus.
func ParseMeasurementStatus(value string) (MeasurementStatus, error) {
	for _, candidate := range validMeasurementStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid measurement status %q", value)
}
