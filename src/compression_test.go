package lttoolbox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMultibyteRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var value = rapid.Uint32().Draw(t, "value")

		var buf bytes.Buffer
		assert.NoError(t, multibyte_write(value, &buf))

		var got, err = multibyte_read(&buf)
		assert.NoError(t, err)
		assert.Equal(t, value, got)
		assert.Zero(t, buf.Len(), "codec must be self-delimiting")
	})
}

func TestMultibyteSmallValuesAreOneByte(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, multibyte_write(0x7F, &buf))
	assert.Equal(t, 1, buf.Len())

	buf.Reset()
	assert.NoError(t, multibyte_write(0x80, &buf))
	assert.Equal(t, 2, buf.Len())
}

func TestMultibyteTruncated(t *testing.T) {
	var buf = bytes.NewBuffer([]byte{0x80, 0x80})

	var _, err = multibyte_read(buf)

	assert.ErrorIs(t, err, ErrCorruptContainer)
}

func TestMultibyteOverflow(t *testing.T) {
	// Five continuation bytes push past 32 bits.
	var buf = bytes.NewBuffer([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01})

	var _, err = multibyte_read(buf)

	assert.ErrorIs(t, err, ErrCorruptContainer)
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "n", "vblex", "кот", "漢字", "a😀b"} {
		var buf bytes.Buffer
		assert.NoError(t, string_write(s, &buf))

		var got, err = string_read(&buf)
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestStringRoundTripRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s = rapid.String().Draw(t, "s")

		var buf bytes.Buffer
		assert.NoError(t, string_write(s, &buf))

		var got, err = string_read(&buf)
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	})
}

func TestStringLengthPastEndOfInput(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, multibyte_write(1000, &buf))
	buf.WriteByte('x')

	var _, err = string_read(&buf)

	assert.ErrorIs(t, err, ErrCorruptContainer)
}

func TestWeightRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var w = rapid.Float64().Draw(t, "w")

		var buf bytes.Buffer
		assert.NoError(t, weight_write(w, &buf))

		var got, err = weight_read(&buf)
		assert.NoError(t, err)
		assert.Equal(t, w, got)
	})
}
