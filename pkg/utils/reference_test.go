package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferenceFormat(t *testing.T) {
	ref := GenerateReference("MOMO")
	assert.Regexp(t, regexp.MustCompile(`^MOMO-\d+-\d{4}$`), ref)

	// Empty prefix falls back to PAY.
	ref = GenerateReference("")
	assert.Regexp(t, regexp.MustCompile(`^PAY-\d+-\d{4}$`), ref)
}

func TestHaversineKm(t *testing.T) {
	// Accra to Kumasi, roughly 200km.
	d := HaversineKm(5.6037, -0.1870, 6.6666, -1.6163)
	assert.InDelta(t, 197, d, 15)

	assert.Equal(t, 0.0, HaversineKm(5.6, -0.18, 5.6, -0.18))
}
