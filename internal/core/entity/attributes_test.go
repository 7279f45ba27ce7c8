package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_ScanPreservesPrecision(t *testing.T) {
	var attrs Attributes
	err := attrs.Scan([]byte(`{"price": 19.99, "weight": 0.1, "count": 42}`))
	require.NoError(t, err)

	// float64 would round-trip 19.99 imprecisely; json.Number must not
	assert.Equal(t, "19.99", attrs.GetDecimal("price").String())
	assert.Equal(t, "0.1", attrs.GetDecimal("weight").String())
	assert.Equal(t, int64(42), attrs.GetInt("count"))
}

func TestAttributes_ScanNil(t *testing.T) {
	var attrs Attributes
	require.NoError(t, attrs.Scan(nil))
	assert.Nil(t, attrs)

	require.NoError(t, attrs.Scan([]byte{}))
	assert.Nil(t, attrs)
}

func TestAttributes_ScanRejectsUnsupportedType(t *testing.T) {
	var attrs Attributes
	assert.Error(t, attrs.Scan(123))
}

func TestAttributes_Getters(t *testing.T) {
	var attrs Attributes
	err := attrs.Scan(`{"color": "red", "fragile": true, "dims": {"w": 10}}`)
	require.NoError(t, err)

	assert.Equal(t, "red", attrs.GetString("color"))
	assert.Equal(t, "fallback", attrs.GetStringOr("missing", "fallback"))
	assert.True(t, attrs.GetBool("fragile"))
	assert.Equal(t, int64(10), attrs.GetMap("dims").GetInt("w"))
	assert.True(t, attrs.Has("color"))
	assert.False(t, attrs.Has("missing"))
}

func TestAttributes_NilSafeGetters(t *testing.T) {
	var attrs Attributes

	assert.Equal(t, "", attrs.GetString("any"))
	assert.Equal(t, int64(0), attrs.GetInt("any"))
	assert.True(t, attrs.GetDecimal("any").Equal(decimal.Zero))
	assert.False(t, attrs.GetBool("any"))
	assert.Nil(t, attrs.GetMap("any"))
	assert.Nil(t, attrs.Clone())
}

func TestAttributes_SetAndValue(t *testing.T) {
	var attrs Attributes
	attrs.Set("sku_note", "bulk")
	attrs.Set("reorder", 5)

	val, err := attrs.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"sku_note": "bulk", "reorder": 5}`, string(val.([]byte)))

	var nilAttrs Attributes
	val, err = nilAttrs.Value()
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestAttributes_CloneIsIndependent(t *testing.T) {
	orig := Attributes{"a": "x"}
	clone := orig.Clone()
	clone.Set("a", "y")

	assert.Equal(t, "x", orig.GetString("a"))
	assert.Equal(t, "y", clone.GetString("a"))
}
