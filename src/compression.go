package lttoolbox

/*------------------------------------------------------------------
 *
 * Purpose:	Byte-level codec used by the binary transducer
 *		container.
 *
 * Description: Non-negative integers are written as a self-delimiting
 *		multibyte sequence: 7 payload bits per byte, low bits
 *		first, high bit set on every byte except the last.
 *		Strings are written as a code-unit count followed by
 *		the UTF-16 code units, each through the same integer
 *		codec.
 *
 *		The encoding of a multibyte integer:
 *
 *		+---------------+
 *		|1|   7 bits    |  more bytes follow
 *		+---------------+
 *		|0|   7 bits    |  last byte
 *		+---------------+
 *
 *------------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf16"
)

// ErrCorruptContainer is reported for any malformed transducer
// container: truncated integers, integers over 32 bits, string
// lengths past the end of input, or dangling pair codes.
var ErrCorruptContainer = errors.New("corrupt transducer container")

// Strings inside a container never get anywhere near this long; a
// larger length prefix means the stream is trash, so fail before
// trying to allocate it.
const max_string_units = 1 << 24

func multibyte_write(value uint32, w io.ByteWriter) error {
	for {
		var b = byte(value & 0x7F)
		value >>= 7
		if value != 0 {
			b |= 0x80
		}
		if err := w.WriteByte(b); err != nil {
			return err
		}
		if value == 0 {
			return nil
		}
	}
}

func multibyte_read(r io.ByteReader) (uint32, error) {
	var value uint32
	var shift uint
	for {
		var b, err = r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: truncated integer", ErrCorruptContainer)
		}
		if shift == 28 && b&0x7F > 0x0F {
			return 0, fmt.Errorf("%w: integer overflows 32 bits", ErrCorruptContainer)
		}
		value |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
		if shift > 28 {
			return 0, fmt.Errorf("%w: integer overflows 32 bits", ErrCorruptContainer)
		}
	}
}

func string_write(s string, w io.ByteWriter) error {
	var units = utf16.Encode([]rune(s))
	if err := multibyte_write(uint32(len(units)), w); err != nil {
		return err
	}
	for _, u := range units {
		if err := multibyte_write(uint32(u), w); err != nil {
			return err
		}
	}
	return nil
}

func string_read(r io.ByteReader) (string, error) {
	var n, err = multibyte_read(r)
	if err != nil {
		return "", err
	}
	if n > max_string_units {
		return "", fmt.Errorf("%w: string length %d out of range", ErrCorruptContainer, n)
	}
	var units = make([]uint16, n)
	for i := range units {
		var u uint32
		u, err = multibyte_read(r)
		if err != nil {
			return "", err
		}
		if u > 0xFFFF {
			return "", fmt.Errorf("%w: code unit %#x out of range", ErrCorruptContainer, u)
		}
		units[i] = uint16(u)
	}
	return string(utf16.Decode(units)), nil
}

// Weights ride along as the raw float64 bit pattern split into two
// multibyte integers, high half first.
func weight_write(w float64, out io.ByteWriter) error {
	var bits = math.Float64bits(w)
	if err := multibyte_write(uint32(bits>>32), out); err != nil {
		return err
	}
	return multibyte_write(uint32(bits&0xFFFFFFFF), out)
}

func weight_read(r io.ByteReader) (float64, error) {
	var hi, err = multibyte_read(r)
	if err != nil {
		return 0, err
	}
	lo, err := multibyte_read(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(hi)<<32 | uint64(lo)), nil
}
