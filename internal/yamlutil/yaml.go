// Package yamlutil wraps the YAML decoder behind the one operation config
// loading needs, so the external dependency stays isolated and swappable.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps input at 1MB. Config files are tiny; anything larger is
// not a config file.
const MaxInputSize = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: nil or empty input")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// UnmarshalStrict decodes data into v and rejects unknown fields, so a typo
// in a config file fails loudly instead of silently falling back to defaults.
func UnmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
