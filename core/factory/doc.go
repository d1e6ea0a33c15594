// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[document.TableDecoder]()
//	reg.Register("csv", func(conf map[string]any) (document.TableDecoder, error) {
//	    var c struct{ Comma string `json:"comma"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return NewCSV(c.Comma), nil
//	})
//	chain, err := reg.CreateAll([]factory.ModuleConfig{{Type: "csv"}})
package factory
