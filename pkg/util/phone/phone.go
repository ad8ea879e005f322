package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidNumber = errors.New("invalid phone number")

// Parse parses raw in the context of region (ISO 3166 alpha-2, e.g. "GB").
// Numbers written with a leading + ignore the region.
func Parse(raw, region string) (*phonenumbers.PhoneNumber, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidNumber
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return nil, ErrInvalidNumber
	}
	if !phonenumbers.IsValidNumber(num) {
		return nil, ErrInvalidNumber
	}
	return num, nil
}

// E164 returns raw as +<country><number>.
func E164(raw, region string) (string, error) {
	num, err := Parse(raw, region)
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Display formats raw for humans. Visitors type phone numbers in every
// shape imaginable, so anything unparsable is returned as typed.
func Display(raw, region string) string {
	num, err := Parse(raw, region)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// TelURI returns a tel: link target, or "" when raw is unparsable.
func TelURI(raw, region string) string {
	num, err := Parse(raw, region)
	if err != nil {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.RFC3966)
}
