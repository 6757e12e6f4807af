package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath_Scalar(t *testing.T) {
	p, err := ParsePath("Company.cif")
	require.NoError(t, err)

	assert.False(t, p.Broadcast)
	assert.Equal(t, []string{"Company", "cif"}, p.Head)
	assert.Empty(t, p.Tail)
	assert.Equal(t, "Company.cif", p.Raw)
}

func TestParsePath_ScalarNested(t *testing.T) {
	p, err := ParsePath("Site.address.city")
	require.NoError(t, err)

	assert.False(t, p.Broadcast)
	assert.Equal(t, []string{"Site", "address", "city"}, p.Head)
}

func TestParsePath_Broadcast(t *testing.T) {
	p, err := ParsePath("Worker[*].dni")
	require.NoError(t, err)

	assert.True(t, p.Broadcast)
	assert.Equal(t, []string{"Worker"}, p.Head)
	assert.Equal(t, []string{"dni"}, p.Tail)
}

func TestParsePath_BroadcastNestedTail(t *testing.T) {
	p, err := ParsePath("Worker[*].prl.level")
	require.NoError(t, err)

	assert.True(t, p.Broadcast)
	assert.Equal(t, []string{"Worker"}, p.Head)
	assert.Equal(t, []string{"prl", "level"}, p.Tail)
}

func TestParsePath_Malformed(t *testing.T) {
	cases := []string{
		"",
		".",
		"Company.",
		".cif",
		"Company..cif",
		"[*].dni",
		"Worker[*]",
		"Worker[*]dni",
		"Worker[*].a[*].b",
		"Worker[x].dni",
	}
	for _, expr := range cases {
		_, err := ParsePath(expr)
		assert.Error(t, err, "expected %q to be rejected", expr)
	}
}
