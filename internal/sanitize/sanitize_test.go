package sanitize

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "shipping_fee", Key("Shipping_Fee"))
	assert.Equal(t, "shippingfee", Key("Shipping Fee"))
	assert.Equal(t, "user_id", Key("user_id"))
	assert.Equal(t, "post-type", Key("post-type!"))
	assert.Equal(t, "", Key("$$$"))
}

func TestTextField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"trims", "  hello  ", "hello"},
		{"collapses whitespace", "a\n\tb   c", "a b c"},
		{"strips tags", "<b>bold</b> text", "bold text"},
		{"strips script", "x<script>alert(1)</script>y", "xy"},
		{"drops percent octets", "a%20b%3Cc", "abc"},
		{"invalid utf8", string([]byte{0xff, 0xfe}), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TextField(tt.in))
		})
	}
}

func TestAbsInt(t *testing.T) {
	n, ok := AbsInt("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	n, ok = AbsInt(7)
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	n, ok = AbsInt(1.9)
	assert.True(t, ok)
	assert.Equal(t, int64(1), n)

	n, ok = AbsInt(json.Number("12"))
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	_, ok = AbsInt(-3)
	assert.False(t, ok)

	_, ok = AbsInt("abc")
	assert.False(t, ok)

	_, ok = AbsInt(nil)
	assert.False(t, ok)
}

func TestAbsIntKeepsLargeIntegersExact(t *testing.T) {
	n, ok := AbsInt(int64(9007199254740993))
	assert.True(t, ok)
	assert.Equal(t, int64(9007199254740993), n)

	n, ok = AbsInt("9007199254740993")
	assert.True(t, ok)
	assert.Equal(t, int64(9007199254740993), n)

	n, ok = AbsInt(json.Number("9223372036854775807"))
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), n)

	n, ok = AbsInt(uint64(math.MaxInt64))
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), n)

	_, ok = AbsInt(uint64(math.MaxUint64))
	assert.False(t, ok)

	_, ok = AbsInt("99999999999999999999")
	assert.False(t, ok)

	_, ok = AbsInt(1e19)
	assert.False(t, ok)

	n, ok = AbsInt("1.5")
	assert.True(t, ok)
	assert.Equal(t, int64(1), n)
}

func TestFloat(t *testing.T) {
	f, ok := Float("0.25")
	assert.True(t, ok)
	assert.InDelta(t, 0.25, f, 1e-9)

	_, ok = Float("fast")
	assert.False(t, ok)
}

func TestFloatRejectsNonFinite(t *testing.T) {
	for _, v := range []interface{}{"Inf", "-Inf", "Infinity", "NaN", "1e400", math.Inf(1), math.NaN(), json.Number("1e400")} {
		_, ok := Float(v)
		assert.False(t, ok, "%v", v)
	}

	_, ok := AbsInt("Inf")
	assert.False(t, ok)
	assert.Equal(t, "", String(math.Inf(-1)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "12", String(12))
	assert.Equal(t, "1.5", String(1.5))
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "1", String(true))
	assert.Equal(t, "x", String([]byte(" x ")))
	assert.Equal(t, "9007199254740993", String(int64(9007199254740993)))
	assert.Equal(t, "18446744073709551615", String(uint64(math.MaxUint64)))
}
