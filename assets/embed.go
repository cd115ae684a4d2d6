package assets

import _ "embed"

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultConfig returns the built-in YAML configuration.
func DefaultConfig() []byte {
	out := make([]byte, len(defaultsYAML))
	copy(out, defaultsYAML)
	return out
}
