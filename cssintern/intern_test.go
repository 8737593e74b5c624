package cssintern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternIdentity(t *testing.T) {
	Reset()

	a := Intern("color")
	b := Intern("color")
	require.Equal(t, a, b, "interning the same text twice must return the same handle")

	c := Intern("background-color")
	require.NotEqual(t, a, c)
}

func TestCaselessEqual(t *testing.T) {
	Reset()

	a := Intern("Color")
	b := Intern("color")
	require.NotEqual(t, a, b, "distinct case is a distinct handle")
	require.True(t, CaselessEqual(a, b))
	require.False(t, CaselessEqual(a, Intern("width")))
}

func TestRefcounting(t *testing.T) {
	Reset()

	h := Intern("display")
	require.True(t, h.Valid())

	h.Release()
	require.False(t, h.Valid(), "refcount reaching zero evicts the entry")

	h2 := Intern("display")
	require.True(t, h2.Valid())
}

func TestZeroHandle(t *testing.T) {
	Reset()
	require.Equal(t, "", Zero.String())
	// Acquire/Release on the zero handle must not panic or affect the pool.
	Zero.Acquire()
	Zero.Release()
}
