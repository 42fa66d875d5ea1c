package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	testCases := []struct {
		name     string
		value    int64
		expected string
	}{
		{name: "zero", value: 0, expected: "0"},
		{name: "small", value: 42, expected: "42"},
		{name: "thousands", value: 1234, expected: "1,234"},
		{name: "millions", value: 1234567, expected: "1,234,567"},
		{name: "negative", value: -1234, expected: "-1,234"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCount(tc.value))
		})
	}
}
