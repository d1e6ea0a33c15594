package availability

import "fmt"

// AvailabilityFormatError reports an availability document that could not
// be decoded in any supported form, or that decoded to zero entries.
type AvailabilityFormatError struct {
	Msg string
	Err error
}

func (e *AvailabilityFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("availability format: %s: %v", e.Msg, e.Err)
	}
	return "availability format: " + e.Msg
}

func (e *AvailabilityFormatError) Unwrap() error { return e.Err }
