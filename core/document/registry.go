package document

import "github.com/kilianp07/availreport/core/factory"

var (
	tableRegistry    = factory.NewRegistry[TableDecoder]()
	documentRegistry = factory.NewRegistry[DocumentDecoder]()
)

// RegisterTableDecoder adds a table decoder factory. The decoder is also
// available to document chains, flattened row by row.
func RegisterTableDecoder(name string, f factory.Factory[TableDecoder]) error {
	if err := tableRegistry.Register(name, f); err != nil {
		return err
	}
	return documentRegistry.Register(name, func(conf map[string]any) (DocumentDecoder, error) {
		d, err := f(conf)
		if err != nil {
			return nil, err
		}
		return Flattened(d), nil
	})
}

// RegisterDocumentDecoder adds a decoder that only produces documents.
func RegisterDocumentDecoder(name string, f factory.Factory[DocumentDecoder]) error {
	return documentRegistry.Register(name, f)
}

// NewTableChain builds the ordered table decoders described by cfgs.
func NewTableChain(cfgs []factory.ModuleConfig) (TableChain, error) {
	return tableRegistry.CreateAll(cfgs)
}

// NewDocumentChain builds the ordered document decoders described by cfgs.
func NewDocumentChain(cfgs []factory.ModuleConfig) (DocumentChain, error) {
	return documentRegistry.CreateAll(cfgs)
}

// TableDecoders lists the registered table decoder types.
func TableDecoders() []string { return tableRegistry.Names() }

// DocumentDecoders lists the registered document decoder types.
func DocumentDecoders() []string { return documentRegistry.Names() }
