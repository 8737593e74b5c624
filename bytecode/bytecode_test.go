package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMakeImportantSetsFlagOnEveryDeclaration builds a multi-declaration
// blob mixing ValueSet and bare-keyword declarations and asserts
// MakeImportant ORs FlagImportant into every header word without changing
// the blob's length, per spec.md §4.3/§8.
func TestMakeImportantSetsFlagOnEveryDeclaration(t *testing.T) {
	var blob []byte
	blob = Emit(blob, Opcode(1), 0, ValueSet, KindKeyword, Operand{Number: Fixed(3)})
	blob = Emit(blob, Opcode(2), 0, ValueAuto, KindKeyword, Operand{})
	blob = Emit(blob, Opcode(3), FlagInherit, ValueSet, KindKeyword, Operand{Number: Fixed(7)})

	before := len(blob)

	err := MakeImportant(blob)
	require.NoError(t, err)
	require.Equal(t, before, len(blob), "MakeImportant must not change blob length")

	var decls []Declaration
	dec := Decoder{Blob: blob}
	require.NoError(t, dec.Walk(func(d Declaration) error {
		decls = append(decls, d)
		return nil
	}))

	require.Len(t, decls, 3)
	for _, d := range decls {
		require.NotZero(t, d.Flags&FlagImportant, "opcode %d must carry the important flag", d.Opcode)
	}
	require.NotZero(t, decls[2].Flags&FlagInherit, "making a blob important must preserve other flags already set")
}

func TestMakeImportantRejectsTruncatedBlob(t *testing.T) {
	blob := Emit(nil, Opcode(1), 0, ValueSet, KindKeyword, Operand{Number: Fixed(1)})
	err := MakeImportant(blob[:2])
	require.Error(t, err)
}
