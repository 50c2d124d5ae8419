package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/statblock-api/internal/errors"
)

func TestParseDamageNotation(t *testing.T) {
	testCases := []struct {
		notation string
		count    int
		size     int
		modifier int
		invalid  bool
	}{
		{notation: "1d8", count: 1, size: 8},
		{notation: "2d6+3", count: 2, size: 6, modifier: 3},
		{notation: " 1D10 - 1 ", count: 1, size: 10, modifier: -1},
		{notation: "0d6", invalid: true},
		{notation: "1d0", invalid: true},
		{notation: "d6", invalid: true},
		{notation: "", invalid: true},
		{notation: "1d6+", invalid: true},
		{notation: "100d1000+1000", count: 100, size: 1000, modifier: 1000},
		{notation: "101d6", invalid: true},
		{notation: "20000000d6", invalid: true},
		{notation: "1d1001", invalid: true},
		{notation: "1d6+1001", invalid: true},
		{notation: "99999999999999999999d6", invalid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.notation, func(t *testing.T) {
			count, size, modifier, err := parseDamageNotation(tc.notation)
			if tc.invalid {
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.count, count)
			assert.Equal(t, tc.size, size)
			assert.Equal(t, tc.modifier, modifier)
		})
	}
}

func TestWithModifier(t *testing.T) {
	assert.Equal(t, "1d20+2", withModifier("1d20", 2))
	assert.Equal(t, "1d20-1", withModifier("1d20", -1))
	assert.Equal(t, "1d20", withModifier("1d20", 0))
}
