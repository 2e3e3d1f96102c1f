package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "v1.5.0", want: "1.5.0"},
		{raw: " 1.5.0 ", want: "1.5.0"},
		{raw: "v1.6.0b1", want: "1.6.0b1"},
		{raw: "23.1", want: "23.1"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := Normalize("")
	assert.Error(t, err)
	_, err = Normalize("latest")
	assert.Error(t, err)
}

func TestIsDev(t *testing.T) {
	assert.True(t, IsDev("dev"))
	assert.True(t, IsDev(""))
	assert.True(t, IsDev("1.2.0-dev"))
	assert.False(t, IsDev("1.2.0"))
}

func TestIsPrerelease(t *testing.T) {
	assert.True(t, IsPrerelease("v1.6.0b1"))
	assert.True(t, IsPrerelease("1.6.0-rc.2"))
	assert.False(t, IsPrerelease("v1.6.0"))
	assert.False(t, IsPrerelease("nonsense"))
}

func TestCompare(t *testing.T) {
	cmp, err := Compare("1.4.9", "v1.5.0")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = Compare("1.5.0", "1.5")
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = Compare("1.6.0", "1.6.0b1")
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	_, err = Compare("x", "1.0")
	assert.Error(t, err)
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		current string
		minimum string
		want    bool
	}{
		{current: "3.12.1", minimum: "3.9", want: true},
		{current: "3.9.0", minimum: "3.9", want: true},
		{current: "3.8.18", minimum: "3.9", want: false},
		{current: "3.13.0rc1", minimum: "3.9", want: true},
		{current: "23.0.1", minimum: "23.1", want: false},
		{current: "24.0", minimum: "23.1", want: true},
	}
	for _, tt := range tests {
		got, err := AtLeast(tt.current, tt.minimum)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s >= %s", tt.current, tt.minimum)
	}
}

func TestAtLeastInvalidInput(t *testing.T) {
	_, err := AtLeast("3.12", "three")
	assert.Error(t, err)
	_, err = AtLeast("???", "3.9")
	assert.Error(t, err)
}
