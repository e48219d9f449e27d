package codec

import "math"

// Conversions between the format's float micro-formats and float64.
//
// The wire codec itself never converts: 8 and 16 bit float payloads travel
// as raw bit patterns so a round trip cannot drift. These helpers exist for
// the layers that need a numeric view of those bits, such as the JSON
// conversion and the CLI inspector.
//
// The 8-bit format is an E4M3 minifloat: 1 sign bit, 4 exponent bits
// (bias 7), 3 mantissa bits. It has no infinities; the all-ones pattern
// (S.1111.111) is NaN and exponent 15 with any other mantissa is a normal
// number, giving a maximum finite value of 448. The 16-bit format is IEEE
// 754 binary16.

// Float8ToFloat64 expands an E4M3 bit pattern. The expansion is exact:
// every finite minifloat is representable as a float64.
func Float8ToFloat64(bits uint8) float64 {
	sign := 1.0
	if bits&0x80 != 0 {
		sign = -1
	}
	exp := int(bits>>3) & 0x0F
	man := float64(bits & 0x07)

	switch {
	case exp == 0x0F && man == 7:
		return math.NaN()
	case exp == 0:
		// subnormal: m/8 * 2^-6
		return sign * math.Ldexp(man, -9)
	}
	return sign * math.Ldexp(1+man/8, exp-7)
}

// Float8FromFloat64 rounds f to the nearest E4M3 bit pattern (ties to
// even). Values beyond the finite range saturate at +-448, since the format
// has no infinity.
func Float8FromFloat64(f float64) uint8 {
	var sign uint8
	if math.Signbit(f) {
		sign = 0x80
	}
	f = math.Abs(f)

	switch {
	case math.IsNaN(f):
		return sign | 0x7F
	case math.IsInf(f, 0):
		return sign | 0x7E
	case f == 0:
		return sign
	}

	frac, exp := math.Frexp(f) // f = frac * 2^exp, frac in [0.5, 1)
	e := exp - 1 + 7

	if e <= 0 {
		// subnormal range
		m := int(math.RoundToEven(math.Ldexp(f, 9)))
		if m > 7 {
			return sign | 0x08 // rounds up into the smallest normal
		}
		return sign | uint8(m)
	}

	m := int(math.RoundToEven((frac*2 - 1) * 8))
	if m == 8 {
		m = 0
		e++
	}
	if e > 15 || (e == 15 && m == 7) {
		return sign | 0x7E // saturate at the maximum finite value
	}
	return sign | uint8(e)<<3 | uint8(m)
}

// Float16ToFloat64 expands an IEEE 754 binary16 bit pattern. The expansion
// is exact.
func Float16ToFloat64(bits uint16) float64 {
	sign := 1.0
	if bits&0x8000 != 0 {
		sign = -1
	}
	exp := int(bits>>10) & 0x1F
	man := float64(bits & 0x03FF)

	switch {
	case exp == 0x1F && man != 0:
		return math.NaN()
	case exp == 0x1F:
		return sign * math.Inf(1)
	case exp == 0:
		// subnormal: m/1024 * 2^-14
		return sign * math.Ldexp(man, -24)
	}
	return sign * math.Ldexp(1+man/1024, exp-15)
}

// Float16FromFloat64 rounds f to the nearest binary16 bit pattern (ties to
// even), overflowing to infinity past the finite range.
func Float16FromFloat64(f float64) uint16 {
	var sign uint16
	if math.Signbit(f) {
		sign = 0x8000
	}
	f = math.Abs(f)

	switch {
	case math.IsNaN(f):
		return sign | 0x7E00
	case math.IsInf(f, 0):
		return sign | 0x7C00
	case f == 0:
		return sign
	}

	frac, exp := math.Frexp(f)
	e := exp - 1 + 15

	if e <= 0 {
		m := int(math.RoundToEven(math.Ldexp(f, 24)))
		if m > 0x03FF {
			return sign | 0x0400 // rounds up into the smallest normal
		}
		return sign | uint16(m)
	}

	m := int(math.RoundToEven((frac*2 - 1) * 1024))
	if m == 1024 {
		m = 0
		e++
	}
	if e >= 0x1F {
		return sign | 0x7C00
	}
	return sign | uint16(e)<<10 | uint16(m)
}
