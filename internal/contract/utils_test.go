package contract

import (
	"testing"

	"github.com/faultline/faultline/schema"
	"github.com/stretchr/testify/assert"
)

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "true", "1", "YES", "True"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got, "input %q", s)
	}
	for _, s := range []string{"no", "false", "0", "NO"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got, "input %q", s)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestLabelsUncolored(t *testing.T) {
	// With colors off the labels are the plain tier and reason text.
	assert.Equal(t, "Critical", StabilityLabel(schema.CriticalMTBF, false))
	assert.Equal(t, "Stable", StabilityLabel(schema.StableTier, false))
	assert.Equal(t, "Safe", RiskLabel(schema.SafeTier, false))
	assert.Equal(t, "both", ReasonLabel(schema.ReasonBoth, false))
	assert.Equal(t, "", ReasonLabel("", true))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , , b "))
}

func TestGetCacheDBFilePath(t *testing.T) {
	path := GetCacheDBFilePath()
	assert.Contains(t, path, ".faultline_cache.db")
}
