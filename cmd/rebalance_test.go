package cmd

import (
	"testing"

	"github.com/etnz/allocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRatios(t *testing.T) {
	ratios, err := parseRatios([]string{"Stocks=60", "Bonds= 40.5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]allocation.Percent{"Stocks": 60, "Bonds": 40.5}, ratios)
}

func TestParseRatios_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing equal", []string{"Stocks60"}},
		{"missing name", []string{"=60"}},
		{"twice", []string{"Stocks=60", "Stocks=40"}},
		{"not a number", []string{"Stocks=sixty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRatios(tt.args)
			assert.Error(t, err)
		})
	}
}
