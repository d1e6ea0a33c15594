package schedule

import "github.com/kilianp07/availreport/core/document"

// Load decodes raw with the first table decoder of chain that accepts it and
// normalizes the result.
func Load(raw []byte, chain document.TableChain, opts Options) (Result, error) {
	t, err := document.DecodeTable(chain, raw)
	if err != nil {
		return Result{}, &ScheduleFormatError{Msg: "file could not be read in any supported format", Err: err}
	}
	if opts.Logger != nil {
		opts.Logger.Debugw("schedule table decoded", map[string]any{"format": t.Format, "rows": len(t.Rows)})
	}
	return Normalize(t, opts)
}
