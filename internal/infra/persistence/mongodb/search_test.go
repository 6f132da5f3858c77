package mongodb

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPattern_EscapesMetacharacters(t *testing.T) {
	pattern := searchPattern("acme (east)")

	assert.Equal(t, `acme \(east\)`, pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)

	// The quoted pattern stays a valid regex and matches the term literally,
	// case-insensitively.
	compiled, err := regexp.Compile("(?i)" + pattern.Pattern)
	require.NoError(t, err)
	assert.True(t, compiled.MatchString("ACME (East) Warehouse"))
	assert.False(t, compiled.MatchString("acme east"))
}

func TestSearchPattern_PlainTermUnchanged(t *testing.T) {
	pattern := searchPattern("widget")

	assert.Equal(t, "widget", pattern.Pattern)
}
