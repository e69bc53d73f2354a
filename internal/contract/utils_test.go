package contract

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero", input: 0.0, expected: NoneValue},
		{name: "just before weak", input: 0.19, expected: NoneValue},
		{name: "exactly weak", input: 0.2, expected: WeakValue},
		{name: "negative moderate", input: -0.5, expected: ModerateValue},
		{name: "exactly strong", input: 0.7, expected: StrongValue},
		{name: "perfect anti-correlation", input: -1, expected: StrongValue},
		{name: "undefined", input: math.NaN(), expected: NoneValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		r     float64
		label string
	}{
		{"none", 0.1, NoneValue},
		{"weak", 0.3, WeakValue},
		{"moderate", -0.45, ModerateValue},
		{"strong", 0.95, StrongValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, GetColorLabel(tt.r), tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestGetCacheDBFilePath(t *testing.T) {
	path := GetCacheDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".paleoreel_cache.db"))
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"fits", "d18O", 10, "d18O"},
		{"truncated", "benthic_foraminifera_d18O", 10, "benthic..."},
		{"width too small", "benthic", 3, "benthic"},
		{"unicode", "δ18O_benthic", 6, "δ18..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSeriesList(t *testing.T) {
	assert.Nil(t, ParseSeriesList(""))
	assert.Equal(t, []string{"a", "b"}, ParseSeriesList(" a ,b,, a"))
}

func TestSetVerbose(t *testing.T) {
	SetVerbose(true)
	assert.True(t, Log().Enabled(t.Context(), -4))
	SetVerbose(false)
	assert.False(t, Log().Enabled(t.Context(), -4))
}
