// Package classifier wires pluggable document classification providers
// behind the port.DocumentClassifier interface.
package classifier

import (
	"fmt"

	"obrapass/internal/config"
	"obrapass/internal/port"
)

// ProviderFactory is a function that creates a DocumentClassifier from a
// provider config.
type ProviderFactory func(cfg *config.ClassifierConfig) (port.DocumentClassifier, error)

// registry of classifier provider factories, populated explicitly via
// RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a classifier provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewClassifier creates a DocumentClassifier from a provider config using the
// registered factory.
func NewClassifier(cfg *config.ClassifierConfig) (port.DocumentClassifier, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown classifier provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
