package codes

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrInvalidLength = errors.New("invalid code length")
	ErrEmptyCharset  = errors.New("charset cannot be empty")
)

const (
	// DefaultReferenceLength is the length of lead reference codes.
	DefaultReferenceLength = 8

	// Upper case alphanumeric excluding ambiguous characters (0/O, 1/I/L).
	// Reference codes are read out over the phone.
	charsetReference = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

// Generator issues human-friendly reference codes.
type Generator struct {
	length  int
	charset string
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{length: cfg.GetReferenceLength(), charset: cfg.GetCharset()}
}

// Reference returns a fresh reference code, e.g. "K7Q2MX9P".
func (g *Generator) Reference() (string, error) {
	return GenerateCode(g.length, g.charset)
}

// GenerateCode creates a code of specified length from a given character set.
func GenerateCode(length int, charset string) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}
	if len(charset) == 0 {
		return "", ErrEmptyCharset
	}

	return generateFromCharset(length, charset)
}

func generateFromCharset(length int, charset string) (string, error) {
	result := make([]byte, length)
	max := big.NewInt(int64(len(charset)))

	for i := range length {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		result[i] = charset[n.Int64()]
	}

	return string(result), nil
}
