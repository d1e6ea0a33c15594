package availability

import (
	"github.com/kilianp07/availreport/core/document"
)

// Load decodes raw with the first decoder of chain that accepts it and parses
// the result. A document no decoder understands fails with an
// AvailabilityFormatError wrapping every decoder's error.
func Load(raw []byte, chain document.DocumentChain, opts Options) (Result, error) {
	doc, err := document.DecodeDocument(chain, raw)
	if err != nil {
		return Result{}, &AvailabilityFormatError{Msg: "file could not be read in any supported format", Err: err}
	}
	if opts.Logger != nil {
		opts.Logger.Debugw("availability document decoded", map[string]any{"format": doc.Format, "lines": len(doc.Lines)})
	}
	return Parse(doc, opts)
}
