package schedule

import "fmt"

// ScheduleFormatError reports a structurally invalid booking export: a
// missing column or a timestamp that cannot be parsed.
type ScheduleFormatError struct {
	Msg string
	Err error
}

func (e *ScheduleFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schedule format: %s: %v", e.Msg, e.Err)
	}
	return "schedule format: " + e.Msg
}

func (e *ScheduleFormatError) Unwrap() error { return e.Err }
