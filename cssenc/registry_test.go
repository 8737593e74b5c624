package cssenc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResolvesDefaultAliasesCaseInsensitively(t *testing.T) {
	r := New()

	canon, ok := r.Canonical("UTF8")
	require.True(t, ok)
	require.Equal(t, "UTF-8", canon)

	canon, ok = r.Canonical("Latin1")
	require.True(t, ok)
	require.Equal(t, "ISO-8859-1", canon)
}

func TestCanonicalReportsUnknownAlias(t *testing.T) {
	r := New()
	name, ok := r.Canonical("x-made-up-charset")
	require.False(t, ok)
	require.Equal(t, "x-made-up-charset", name)
}

func TestInitialiseOverridesDefaultEntry(t *testing.T) {
	r := New()
	require.NoError(t, r.Initialise(strings.NewReader("utf8 UTF-8-custom\n")))

	canon, ok := r.Canonical("utf8")
	require.True(t, ok)
	require.Equal(t, "UTF-8-custom", canon)
}

func TestInitialiseRejectsMalformedLine(t *testing.T) {
	r := New()
	err := r.Initialise(strings.NewReader("not-a-valid-line\n"))
	require.Error(t, err)
}

func TestFinaliseClearsAndBlocksFurtherUse(t *testing.T) {
	r := New()
	r.Finalise()

	_, ok := r.Canonical("utf8")
	require.False(t, ok)

	err := r.Initialise(strings.NewReader("a b\n"))
	require.Error(t, err)
}
