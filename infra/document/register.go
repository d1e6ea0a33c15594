package document

import (
	"github.com/kilianp07/availreport/core/factory"

	core "github.com/kilianp07/availreport/core/document"
)

// init registers the built-in decoders.
func init() {
	_ = core.RegisterTableDecoder("xlsx", func(conf map[string]any) (core.TableDecoder, error) {
		var x XLSX
		if err := factory.Decode(conf, &x); err != nil {
			return nil, err
		}
		return x, nil
	})
	_ = core.RegisterTableDecoder("csv", func(conf map[string]any) (core.TableDecoder, error) {
		var c CSV
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return c, nil
	})
	_ = core.RegisterTableDecoder("html_table", func(map[string]any) (core.TableDecoder, error) {
		return HTMLTable{}, nil
	})
	_ = core.RegisterDocumentDecoder("html_sections", func(map[string]any) (core.DocumentDecoder, error) {
		return HTMLSections{}, nil
	})
}
