package csserr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCode(t *testing.T) {
	err := Wrap(Invalid, "double combine")
	require.True(t, errors.Is(err, ErrInvalid))
	require.False(t, errors.Is(err, ErrNoMem))
}

func TestCodeStrings(t *testing.T) {
	require.Equal(t, "out of memory", NoMem.Error())
	require.Equal(t, "imports pending", ImportsPending.Error())
}
