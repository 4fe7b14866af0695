// Package passcode derives time-based one-time passwords (RFC 6238) with
// fixed parameters: HMAC-SHA1, six digits, thirty-second step and no skew.
package passcode

import (
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/semmy-space/twofa/internal/fault"
)

// Period is the TOTP time step
const Period = 30 * time.Second

// Digits is the length of a generated code
const Digits = 6

var opts = totp.ValidateOpts{
	Period:    uint(Period / time.Second),
	Skew:      0,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

var errEmptySecret = errors.New("secret is empty")

// Generate returns the code for secret at the given instant.
func Generate(secret string, at time.Time) (string, error) {
	if _, err := decode(secret); err != nil {
		return "", fault.E(fault.InvalidSecret, "generate", "", err)
	}

	code, err := totp.GenerateCodeCustom(secret, at, opts)
	if err != nil {
		return "", fault.E(fault.InvalidSecret, "generate", "", err)
	}
	return code, nil
}

// Remaining returns how long the code valid at `at` stays valid
func Remaining(at time.Time) time.Duration {
	step := int64(Period / time.Second)
	left := step - at.Unix()%step
	return time.Duration(left) * time.Second
}

// Normalize turns user input into the canonical stored form.
// Input is either raw base32 (case, spaces and dashes ignored) or an
// otpauth://totp URI whose parameters match the fixed ones.
func Normalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(strings.ToLower(input), "otpauth://") {
		secret, err := fromURI(input)
		if err != nil {
			return "", fault.E(fault.InvalidSecret, "parse", "", err)
		}
		input = secret
	}

	secret := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		}
		return r
	}, strings.ToUpper(input))

	if _, err := decode(secret); err != nil {
		return "", fault.E(fault.InvalidSecret, "parse", "", err)
	}
	return secret, nil
}

func fromURI(uri string) (string, error) {
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return "", fmt.Errorf("parse otpauth uri: %w", err)
	}
	if key.Type() != "totp" {
		return "", fmt.Errorf("unsupported otp type %q", key.Type())
	}
	if key.Algorithm() != otp.AlgorithmSHA1 {
		return "", fmt.Errorf("unsupported algorithm %s", key.Algorithm())
	}
	if key.Digits() != otp.DigitsSix {
		return "", fmt.Errorf("unsupported digit count %d", key.Digits().Length())
	}
	if key.Period() != uint64(opts.Period) {
		return "", fmt.Errorf("unsupported period %ds", key.Period())
	}
	if key.Secret() == "" {
		return "", errEmptySecret
	}
	return key.Secret(), nil
}

// decode mirrors the leniency of the generator: padding is optional and
// letters may be lower case.
func decode(secret string) ([]byte, error) {
	s := strings.ToUpper(strings.TrimSpace(secret))
	if s == "" {
		return nil, errEmptySecret
	}
	if n := len(s) % 8; n != 0 {
		s += strings.Repeat("=", 8-n)
	}
	raw, err := base32.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base32: %w", err)
	}
	return raw, nil
}
