package extract

import (
	"fmt"
	"sort"
)

// DefaultVariant is the extractor used when a company's configuration does
// not name one.
const DefaultVariant = "default"

// ErrUnknownExtractor is wrapped by Get when no variant matches the name.
var ErrUnknownExtractor = fmt.Errorf("unknown extractor variant")

// registry maps variant names to their implementations. Variants are fixed at
// compile time; selecting one is a configuration concern, not a code-loading
// one.
var registry = map[string]Extractor{
	"default":     &HeuristicExtractor{},
	"thameswater": &ThamesWaterExtractor{},
	"rss":         &RSSExtractor{},
}

// Get returns the extractor registered under name. An empty name selects the
// default heuristic variant.
func Get(name string) (Extractor, error) {
	if name == "" {
		name = DefaultVariant
	}
	ex, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtractor, name)
	}
	return ex, nil
}

// Names returns the registered variant names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
