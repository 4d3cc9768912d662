package codec

import (
	"errors"
	"math"
	"testing"

	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type button struct {
	Label   string   `cty:"label"`
	Enabled bool     `cty:"enabled"`
	Width   float64  `cty:"width"`
	Tags    []string `cty:"tags"`
}

func TestRoundTrip(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		for _, v := range []string{"", "hello", "ünïcode"} {
			got, err := String().Decode(String().Encode(v))
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("bool", func(t *testing.T) {
		for _, v := range []bool{true, false} {
			got, err := Bool().Decode(Bool().Encode(v))
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("number", func(t *testing.T) {
		for _, v := range []float64{0, -1.5, 3.25, 1e12} {
			got, err := Number().Decode(Number().Encode(v))
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("int", func(t *testing.T) {
		for _, v := range []int64{0, -7, 1 << 40} {
			got, err := Int().Decode(Int().Encode(v))
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("list", func(t *testing.T) {
		c := List(Int())
		for _, v := range [][]int64{{}, {1}, {1, 2, 3}} {
			got, err := c.Decode(c.Encode(v))
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("map", func(t *testing.T) {
		c := Map(String())
		for _, v := range []map[string]string{{}, {"a": "x", "b": "y"}} {
			got, err := c.Decode(c.Encode(v))
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("nullable", func(t *testing.T) {
		c := Nullable(String())
		got, err := c.Decode(c.Encode(nil))
		require.NoError(t, err)
		assert.Nil(t, got)

		s := "set"
		got, err = c.Decode(c.Encode(&s))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, s, *got)
	})

	t.Run("go struct", func(t *testing.T) {
		c := Go[button]()
		v := button{Label: "Submit", Enabled: true, Width: 120, Tags: []string{"primary"}}
		got, err := c.Decode(c.Encode(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	})

	t.Run("raw preserves identity", func(t *testing.T) {
		n := node.FromValue(cty.StringVal("x"))
		got, err := Raw().Decode(Raw().Encode(n))
		require.NoError(t, err)
		assert.True(t, node.Same(n, got))
	})
}

func TestEncode_NaNIsTotal(t *testing.T) {
	var n node.Node
	require.NotPanics(t, func() { n = Number().Encode(math.NaN()) })
	assert.Equal(t, node.KindNull, n.Kind())

	_, err := Number().Decode(n)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	var b node.Node
	require.NotPanics(t, func() { b = Go[button]().Encode(button{Label: "x", Width: math.NaN()}) })
	assert.Equal(t, node.KindNull, b.Kind())

	inf := Number().Encode(math.Inf(1))
	got, err := Number().Decode(inf)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestDecode_ShapeMismatch(t *testing.T) {
	num := node.FromValue(cty.NumberIntVal(1))
	str := node.FromValue(cty.StringVal("x"))
	frac := node.FromValue(cty.NumberFloatVal(1.5))
	null := node.FromValue(cty.NullVal(cty.String))

	testCases := []struct {
		name string
		run  func() error
		want string
	}{
		{"string from number", func() error { _, err := String().Decode(num); return err }, "cannot decode number into string"},
		{"bool from string", func() error { _, err := Bool().Decode(str); return err }, "cannot decode string into bool"},
		{"number from null", func() error { _, err := Number().Decode(null); return err }, "cannot decode null into number"},
		{"int from fraction", func() error { _, err := Int().Decode(frac); return err }, "into whole number"},
		{"list from string", func() error { _, err := List(String()).Decode(str); return err }, "into list"},
		{"map from number", func() error { _, err := Map(String()).Decode(num); return err }, "into map"},
		{"struct from string", func() error { _, err := Go[button]().Decode(str); return err }, "cannot decode string"},
		{"string from nil", func() error { _, err := String().Decode(nil); return err }, "cannot decode null"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrShapeMismatch))
			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestList_ElementMismatchNamesPath(t *testing.T) {
	n := node.FromValue(cty.ObjectVal(map[string]cty.Value{
		"values": cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.StringVal("two")}),
	}))
	values, _ := n.Get("values")

	_, err := List(Int()).Decode(values)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	assert.Contains(t, err.Error(), "element 1")
	assert.Contains(t, err.Error(), `at "values[1]"`)
}

func TestGo_ConvertsTuples(t *testing.T) {
	n := node.FromValue(cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}))

	got, err := Go[[]string]().Decode(n)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFunc(t *testing.T) {
	calls := 0
	c := Func(
		func(n node.Node) (string, error) {
			calls++
			return String().Decode(n)
		},
		String().Encode,
	)

	got, err := c.Decode(c.Encode("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", got)
	assert.Equal(t, 1, calls)
}
