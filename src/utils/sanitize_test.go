package utils_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"fittrack/src/utils"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Oatmeal  ", "Oatmeal"},
		{"<script>alert(1)</script>", "scriptalert(1)/script"},
		{"Mac & Cheese", "Mac &amp; Cheese"},
		{"Mac &amp; Cheese", "Mac &amp; Cheese"},
		{"caf&#233;", "caf&#233;"},
		{"a && b", "a &amp;&amp; b"},
		{"", ""},
	}

	for _, tt := range tests {
		got := utils.SanitizeString(tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
		assert.Equal(t, got, utils.SanitizeString(got), "idempotent for %q", tt.input)
	}
}

func TestSanitizeNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"42", 42},
		{" 3.5 ", 3.5},
		{"-10", 0},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e3", 1000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, utils.SanitizeNumber(tt.input), tt.input)
	}
}

func TestSanitizeInt(t *testing.T) {
	assert.Equal(t, 25, utils.SanitizeInt("25", 10))
	assert.Equal(t, 7, utils.SanitizeInt("7.9", 10))
	assert.Equal(t, 10, utils.SanitizeInt("", 10))
	assert.Equal(t, 10, utils.SanitizeInt("-3", 10))
	assert.Equal(t, 10, utils.SanitizeInt("many", 10))
	assert.Equal(t, math.MaxInt32, utils.SanitizeInt("1e20", 10))
	assert.Equal(t, math.MaxInt32, utils.SanitizeInt("99999999999999999999999", 10))
}
