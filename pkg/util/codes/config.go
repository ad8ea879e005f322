package codes

import "github.com/Alijeyrad/interiora_backend/config"

// Config holds settings for reference code generation
type Config struct {
	ReferenceLength int

	// Charset is the character set used for reference codes.
	// If empty, defaults to upper case alphanumeric without ambiguous chars.
	Charset string
}

// DefaultConfig returns sensible defaults for code generation
func DefaultConfig() Config {
	return Config{
		ReferenceLength: DefaultReferenceLength,
		Charset:         charsetReference,
	}
}

// GetCharset returns the configured charset or the default if empty
func (c Config) GetCharset() string {
	if c.Charset == "" {
		return charsetReference
	}
	return c.Charset
}

func (c Config) GetReferenceLength() int {
	if c.ReferenceLength < 1 {
		return DefaultReferenceLength
	}
	return c.ReferenceLength
}

// FromCentralConfig converts central config.CodesConfig to package Config
func FromCentralConfig(c config.CodesConfig) Config {
	return Config{
		ReferenceLength: c.ReferenceLength,
		Charset:         c.Charset,
	}
}
