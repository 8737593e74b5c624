package style

import (
	"testing"

	"cssengine/bytecode"
	"cssengine/cssintern"

	"github.com/stretchr/testify/require"
)

func TestInitialiseSetsDenseDefaults(t *testing.T) {
	var c Computed
	require.NoError(t, Initialise(&c, nil))

	disc, display := c.Display()
	require.Equal(t, Set, disc)
	require.Equal(t, DisplayInline, display)

	_, size := c.FontSize()
	require.Equal(t, bytecode.FromFloat(16), size.Value)
	require.Equal(t, bytecode.UnitPX, size.Unit)

	_, weight := c.FontWeight()
	require.Equal(t, FontWeight400, weight)
}

func TestInitialiseLeavesUncommonNil(t *testing.T) {
	var c Computed
	require.NoError(t, Initialise(&c, nil))
	require.Nil(t, c.uncommon, "touching only dense properties must not allocate the uncommon sub-record")
}

func TestApplyAllocatesUncommonOnlyWhenTouched(t *testing.T) {
	var c Computed
	require.NoError(t, Initialise(&c, nil))
	require.Nil(t, c.uncommon)

	c.Apply(PropCursor, Set, bytecode.Operand{Strings: []cssintern.Handle{cssintern.Intern("pointer")}})
	require.NotNil(t, c.uncommon)

	_, cursor := c.Cursor()
	require.Equal(t, []string{"pointer"}, cursor)
}

func TestComposeInheritsWhenChildMarksInherit(t *testing.T) {
	var parent, child, result Computed
	require.NoError(t, Initialise(&parent, nil))
	require.NoError(t, Initialise(&child, nil))

	parent.Apply(PropColor, Set, bytecode.Operand{Color: bytecode.NewColor(0xff, 0, 0, 0xff)})
	child.setDisc(PropColor, Inherit)

	require.NoError(t, Compose(&parent, &child, nil, &result))

	_, col := result.Color()
	require.Equal(t, bytecode.NewColor(0xff, 0, 0, 0xff), col)
}

func TestComposeChildValueWinsOverParent(t *testing.T) {
	var parent, child, result Computed
	require.NoError(t, Initialise(&parent, nil))
	require.NoError(t, Initialise(&child, nil))

	parent.Apply(PropColor, Set, bytecode.Operand{Color: bytecode.NewColor(0xff, 0, 0, 0xff)})
	child.Apply(PropColor, Set, bytecode.Operand{Color: bytecode.NewColor(0, 0xff, 0, 0xff)})

	require.NoError(t, Compose(&parent, &child, nil, &result))

	_, col := result.Color()
	require.Equal(t, bytecode.NewColor(0, 0xff, 0, 0xff), col)
}

func TestComposeFontSizeUsesResolver(t *testing.T) {
	var parent, child, result Computed
	require.NoError(t, Initialise(&parent, nil))
	require.NoError(t, Initialise(&child, nil))

	parent.Apply(PropFontSize, Set, bytecode.Operand{Length: bytecode.Length{Value: bytecode.FromFloat(16), Unit: bytecode.UnitPX}})
	child.Apply(PropFontSize, Set, bytecode.Operand{Length: bytecode.Length{Value: bytecode.FromFloat(1.5), Unit: bytecode.UnitEM}})

	resolver := func(parentHint, childHint bytecode.Length) bytecode.Length {
		if childHint.Unit == bytecode.UnitEM {
			return bytecode.Length{Value: bytecode.FromFloat(childHint.Value.Float() * parentHint.Value.Float()), Unit: bytecode.UnitPX}
		}
		return childHint
	}

	require.NoError(t, Compose(&parent, &child, resolver, &result))

	_, size := result.FontSize()
	require.InDelta(t, 24.0, size.Value.Float(), 0.01)
	require.Equal(t, bytecode.UnitPX, size.Unit)
}

func TestQuotesDefaultFromHandler(t *testing.T) {
	h := fakeUADefaults{quotes: []cssintern.Handle{cssintern.Intern(`"`), cssintern.Intern(`"`)}}
	var c Computed
	require.NoError(t, Initialise(&c, h))

	disc, q := c.Quotes()
	require.Equal(t, Set, disc)
	require.Equal(t, []string{`"`, `"`}, q)
}

type fakeUADefaults struct{ quotes []cssintern.Handle }

func (f fakeUADefaults) DefaultQuotes() []cssintern.Handle { return f.quotes }

func TestTopFixupForcesAutoUnderStatic(t *testing.T) {
	var c Computed
	require.NoError(t, Initialise(&c, nil))
	c.Apply(PropTop, Set, bytecode.Operand{Length: bytecode.Length{Value: bytecode.FromFloat(10), Unit: bytecode.UnitPX}})

	disc, _ := c.Top()
	require.Equal(t, Auto, disc, "position:static must force top/right/bottom/left to auto regardless of stored value")
}

func TestTopBottomBothAutoUnderRelativeResolveToZero(t *testing.T) {
	var c Computed
	require.NoError(t, Initialise(&c, nil))
	c.Apply(PropPosition, Set, bytecode.Operand{Number: bytecode.Fixed(PositionRelative)})

	disc, top := c.Top()
	require.Equal(t, Set, disc)
	require.Equal(t, bytecode.Fixed(0), top.Value)
}

func TestBottomNegatesTopUnderRelative(t *testing.T) {
	var c Computed
	require.NoError(t, Initialise(&c, nil))
	c.Apply(PropPosition, Set, bytecode.Operand{Number: bytecode.Fixed(PositionRelative)})
	c.Apply(PropTop, Set, bytecode.Operand{Length: bytecode.Length{Value: bytecode.FromFloat(10), Unit: bytecode.UnitPX}})

	_, bottom := c.Bottom()
	require.Equal(t, -bytecode.FromFloat(10), bottom.Value)
}

func TestDisplayCoercesInlineToBlockOnRoot(t *testing.T) {
	var c Computed
	require.NoError(t, Initialise(&c, nil))
	c.SetRoot(true)

	_, d := c.Display()
	require.Equal(t, DisplayBlock, d, "inline is the initial display value; on the root element it coerces to block")
}

func TestDisplayCoercesOnAbsolutePosition(t *testing.T) {
	var c Computed
	require.NoError(t, Initialise(&c, nil))
	c.Apply(PropPosition, Set, bytecode.Operand{Number: bytecode.Fixed(PositionAbsolute)})
	c.Apply(PropDisplay, Set, bytecode.Operand{Number: bytecode.Fixed(DisplayInlineBlock)})

	_, d := c.Display()
	require.Equal(t, DisplayBlock, d)
}

func TestFloatBecomesNoneUnderFixedPosition(t *testing.T) {
	var c Computed
	require.NoError(t, Initialise(&c, nil))
	c.Apply(PropPosition, Set, bytecode.Operand{Number: bytecode.Fixed(PositionFixed)})
	c.Apply(PropFloat, Set, bytecode.Operand{Number: bytecode.Fixed(FloatLeft)})

	_, f := c.Float()
	require.Equal(t, FloatNone, f)
}
