package usecases

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"unicode"

	"rimmarsa.backend/pkg/crypto"
)

// PromoCodeExists reports whether a code is already assigned to a vendor
type PromoCodeExists func(ctx context.Context, code string) (bool, error)

// PromoCodeGenerator derives short shareable vendor codes from business names.
// A code is the cleaned business name prefix followed by a random suffix, e.g. "SHOPAB7K2Q".
type PromoCodeGenerator struct {
	PrefixLength    int
	MinPrefixLength int
	SuffixLength    int
	MaxLength       int
	MaxAttempts     int
	FallbackPrefix  string
	// FallbackLength is the number of random characters after FallbackPrefix
	FallbackLength int
	Rand           io.Reader
}

// NewPromoCodeGenerator returns a generator reading from crypto/rand
func NewPromoCodeGenerator() *PromoCodeGenerator {
	return &PromoCodeGenerator{
		PrefixLength:    6,
		MinPrefixLength: 3,
		SuffixLength:    4,
		MaxLength:       10,
		MaxAttempts:     10,
		FallbackPrefix:  "RM",
		FallbackLength:  8,
		Rand:            rand.Reader,
	}
}

// Generate returns a code for businessName that exists reported as free. After
// MaxAttempts collisions it returns a random fallback code without checking it.
func (g *PromoCodeGenerator) Generate(ctx context.Context, businessName string, exists PromoCodeExists) (string, error) {
	prefix, err := g.Prefix(businessName)
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < g.MaxAttempts; attempt++ {
		code, err := g.candidate(prefix)
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check promo code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return g.Fallback()
}

// Prefix keeps the ASCII letters and digits of businessName, upper cased and truncated
// to PrefixLength, padded with random characters up to MinPrefixLength.
func (g *PromoCodeGenerator) Prefix(businessName string) (string, error) {
	var b strings.Builder
	for _, r := range businessName {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}

	prefix := b.String()
	if len(prefix) > g.PrefixLength {
		prefix = prefix[:g.PrefixLength]
	}
	if len(prefix) < g.MinPrefixLength {
		pad, err := crypto.RandomString(g.Rand, crypto.UpperAlphanumeric, g.MinPrefixLength-len(prefix))
		if err != nil {
			return "", err
		}
		prefix += pad
	}
	return prefix, nil
}

// Fallback returns FallbackPrefix followed by FallbackLength random characters
func (g *PromoCodeGenerator) Fallback() (string, error) {
	suffix, err := crypto.RandomString(g.Rand, crypto.UpperAlphanumeric, g.FallbackLength)
	if err != nil {
		return "", err
	}
	return g.FallbackPrefix + suffix, nil
}

func (g *PromoCodeGenerator) candidate(prefix string) (string, error) {
	n := g.SuffixLength
	if g.MaxLength > 0 && len(prefix)+n > g.MaxLength {
		n = g.MaxLength - len(prefix)
	}
	suffix, err := crypto.RandomString(g.Rand, crypto.UpperAlphanumeric, n)
	if err != nil {
		return "", err
	}
	return prefix + suffix, nil
}
