package pack

import "fmt"

// Extracted pairs an entry path with its materialised payload.
type Extracted struct {
	Path string
	Data []byte
}

// ExtractOne returns an owned copy of the named entry's payload. Lookup is
// a linear search; with duplicate paths the first match wins.
func ExtractOne(p *Package, path string) ([]byte, error) {
	e := p.Find(path)
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
	}

	return p.Materialize(e), nil
}

// ExtractAll materialises every entry, preserving package order.
func ExtractAll(p *Package) []Extracted {
	out := make([]Extracted, 0, len(p.Entries))
	for i := range p.Entries {
		e := &p.Entries[i]
		out = append(out, Extracted{Path: e.Path, Data: p.Materialize(e)})
	}

	return out
}

// ExtractSelected materialises the requested paths in the order given.
// The first missing path fails the whole call.
func ExtractSelected(p *Package, paths []string) ([]Extracted, error) {
	out := make([]Extracted, 0, len(paths))
	for _, path := range paths {
		data, err := ExtractOne(p, path)
		if err != nil {
			return nil, err
		}

		out = append(out, Extracted{Path: path, Data: data})
	}

	return out, nil
}
