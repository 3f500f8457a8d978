// Package numeric implements PostgreSQL's arbitrary-precision numeric text
// and wire representation: a sign tag, a weight (power-of-10000 position of
// the most significant digit group), base-10000 digit groups, and a display
// scale.
//
// This is a codec, not an arithmetic library: values are parsed, formatted,
// and round-tripped bit-exactly, never computed with.
package numeric

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/pgcodec/errs"
	"github.com/arloliu/pgcodec/internal/pool"
)

// Sign is the closed sign classification of a numeric value. Exactly one of
// the three predicates on Numeric is true for any valid value.
type Sign uint8

const (
	SignPositive Sign = iota
	SignNegative
	SignNaN
)

func (s Sign) String() string {
	switch s {
	case SignPositive:
		return "Positive"
	case SignNegative:
		return "Negative"
	case SignNaN:
		return "NaN"
	default:
		return "Unknown"
	}
}

// digitBase is the radix of a digit group; each group holds four decimal
// digits.
const (
	digitBase         = 10000
	decDigitsPerGroup = 4
)

// Weight, scale, and digit-group count are bounded by their int16/uint16
// wire widths.
const (
	maxWeight  = math.MaxInt16
	minWeight  = math.MinInt16
	maxScale   = math.MaxUint16
	maxNDigits = math.MaxUint16
)

// Numeric is an immutable arbitrary-precision decimal in canonical form:
// no leading or trailing all-zero digit groups beyond what weight and scale
// dictate. Zero is {SignPositive, weight 0, no digits}; NaN carries no digits.
type Numeric struct {
	sign   Sign
	weight int16
	dscale uint16
	digits []int16 // base-10000 groups, most significant first
}

// NaN returns the not-a-number value with the canonical empty digit sequence.
func NaN() Numeric {
	return Numeric{sign: SignNaN}
}

// New assembles a Numeric from its wire components, validating structural
// invariants: digit groups in [0, 9999], at most 65535 groups (the wire
// count is a uint16), an empty digit sequence for NaN, and sign being one of
// the three defined tags. The digit slice is copied.
func New(sign Sign, weight int, dscale int, digits []int16) (Numeric, error) {
	if sign > SignNaN {
		return Numeric{}, fmt.Errorf("%w: sign tag %d", errs.ErrBadNumeric, sign)
	}
	if sign == SignNaN {
		if len(digits) != 0 {
			return Numeric{}, fmt.Errorf("%w: NaN with digit groups", errs.ErrBadNumeric)
		}

		return NaN(), nil
	}
	if weight < minWeight || weight > maxWeight {
		return Numeric{}, fmt.Errorf("%w: weight %d", errs.ErrValueOverflow, weight)
	}
	if dscale < 0 || dscale > maxScale {
		return Numeric{}, fmt.Errorf("%w: display scale %d", errs.ErrValueOverflow, dscale)
	}
	if len(digits) > maxNDigits {
		return Numeric{}, fmt.Errorf("%w: %d digit groups", errs.ErrValueOverflow, len(digits))
	}
	for _, d := range digits {
		if d < 0 || d >= digitBase {
			return Numeric{}, fmt.Errorf("%w: group %d", errs.ErrInvalidDigitGroup, d)
		}
	}

	n := Numeric{
		sign:   sign,
		weight: int16(weight),
		dscale: uint16(dscale),
		digits: slices.Clone(digits),
	}
	n.canonicalize()

	return n, nil
}

// canonicalize strips leading and trailing zero digit groups, normalizing
// zero to the positive empty form.
func (n *Numeric) canonicalize() {
	for len(n.digits) > 0 && n.digits[0] == 0 {
		n.digits = n.digits[1:]
		n.weight--
	}
	for len(n.digits) > 0 && n.digits[len(n.digits)-1] == 0 {
		n.digits = n.digits[:len(n.digits)-1]
	}
	if len(n.digits) == 0 {
		n.digits = nil
		n.weight = 0
		if n.sign == SignNegative {
			n.sign = SignPositive
		}
	}
}

// Sign returns the sign tag.
func (n Numeric) Sign() Sign { return n.sign }

// IsPositive reports a positive (or zero) value.
func (n Numeric) IsPositive() bool { return n.sign == SignPositive }

// IsNegative reports a negative value.
func (n Numeric) IsNegative() bool { return n.sign == SignNegative }

// IsNaN reports the not-a-number value.
func (n Numeric) IsNaN() bool { return n.sign == SignNaN }

// IsZero reports an exact zero of any scale.
func (n Numeric) IsZero() bool { return n.sign == SignPositive && len(n.digits) == 0 }

// Weight returns the power-of-10000 position of the most significant digit
// group.
func (n Numeric) Weight() int { return int(n.weight) }

// Scale returns the number of decimal digits displayed after the point.
func (n Numeric) Scale() int { return int(n.dscale) }

// NDigits returns the number of base-10000 digit groups.
func (n Numeric) NDigits() int { return len(n.digits) }

// Digits returns a copy of the digit groups, most significant first.
func (n Numeric) Digits() []int16 { return slices.Clone(n.digits) }

// Equal reports value equality: same sign, weight, digit groups, and display
// scale. Two NaNs are equal; "1.0" and "1.00" are not (scales differ).
func (n Numeric) Equal(other Numeric) bool {
	return n.sign == other.sign &&
		n.weight == other.weight &&
		n.dscale == other.dscale &&
		slices.Equal(n.digits, other.digits)
}

// Parse parses decimal text into the digit-group representation: an optional
// sign, digits with an optional decimal point, and an optional e-notation
// exponent. The literal "NaN" (any case) yields the NaN value. Malformed text
// returns errs.ErrBadNumeric; a weight or scale that cannot fit its wire
// width returns errs.ErrValueOverflow.
func Parse(text string) (Numeric, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Numeric{}, fmt.Errorf("%w: empty input", errs.ErrBadNumeric)
	}
	if strings.EqualFold(s, "nan") {
		return NaN(), nil
	}

	sign := SignPositive
	switch s[0] {
	case '-':
		sign = SignNegative
		s = s[1:]
	case '+':
		s = s[1:]
	}

	// Collect decimal digits; dweight is the decimal position of the most
	// significant digit relative to the units digit, dscale counts digits
	// after the point.
	var dec []int8
	dweight := -1
	dscale := 0
	sawDigit := false
	sawPoint := false

	i := 0
scan:
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			dec = append(dec, int8(c-'0'))
			sawDigit = true
			if sawPoint {
				dscale++
			} else {
				dweight++
			}
		case c == '.':
			if sawPoint {
				return Numeric{}, fmt.Errorf("%w: duplicate decimal point in %q", errs.ErrBadNumeric, text)
			}
			sawPoint = true
		default:
			break scan
		}
	}
	if !sawDigit {
		return Numeric{}, fmt.Errorf("%w: no digits in %q", errs.ErrBadNumeric, text)
	}

	// Optional exponent shifts the decimal point.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		exp, err := strconv.ParseInt(s[i+1:], 10, 32)
		if err != nil {
			return Numeric{}, fmt.Errorf("%w: bad exponent in %q", errs.ErrBadNumeric, text)
		}
		i = len(s)
		dweight += int(exp)
		dscale -= int(exp)
		if dscale < 0 {
			dscale = 0
		}
	}
	if i != len(s) {
		return Numeric{}, fmt.Errorf("%w: trailing input %q", errs.ErrBadNumeric, s[i:])
	}
	if dscale > maxScale {
		return Numeric{}, fmt.Errorf("%w: display scale %d", errs.ErrValueOverflow, dscale)
	}

	// Pack decimal digits into base-10000 groups aligned on the decimal
	// point, exactly as the PostgreSQL wire format does.
	var weight int
	if dweight >= 0 {
		weight = (dweight+decDigitsPerGroup)/decDigitsPerGroup - 1
	} else {
		weight = -((-dweight-1)/decDigitsPerGroup + 1)
	}
	offset := (weight+1)*decDigitsPerGroup - (dweight + 1)
	ndigits := (len(dec) + offset + decDigitsPerGroup - 1) / decDigitsPerGroup

	groups := make([]int16, ndigits)
	var groupScale = [decDigitsPerGroup]int16{1000, 100, 10, 1}
	for idx, d := range dec {
		pos := idx + offset
		groups[pos/decDigitsPerGroup] += int16(d) * groupScale[pos%decDigitsPerGroup]
	}

	n := Numeric{sign: sign, dscale: uint16(dscale), digits: groups}
	if weight < minWeight || weight > maxWeight {
		return Numeric{}, fmt.Errorf("%w: weight %d", errs.ErrValueOverflow, weight)
	}
	n.weight = int16(weight)
	n.canonicalize()

	return n, nil
}

// Format renders the value as canonical decimal text: digit groups with the
// decimal point re-inserted at the position implied by weight, no spurious
// leading zeros, and the fraction padded or truncated to the display scale.
// NaN renders as "NaN". Exact inverse of Parse for parsed values.
func Format(n Numeric) string {
	if n.IsNaN() {
		return "NaN"
	}

	buf := pool.GetFormatBuffer()
	defer pool.PutFormatBuffer(buf)

	if n.sign == SignNegative {
		_ = buf.WriteByte('-')
	}

	// Integer part: groups from weight down to position 0. The first group
	// prints without leading zeros, the rest fully padded.
	if n.weight < 0 {
		_ = buf.WriteByte('0')
	} else {
		for pos := int(n.weight); pos >= 0; pos-- {
			group := n.groupAt(pos)
			if pos == int(n.weight) {
				buf.B = strconv.AppendInt(buf.B, int64(group), 10)
			} else {
				appendGroup(buf, group, decDigitsPerGroup)
			}
		}
	}

	// Fraction: groups below position 0, truncated to exactly dscale digits.
	if n.dscale > 0 {
		_ = buf.WriteByte('.')
		remaining := int(n.dscale)
		for pos := -1; remaining > 0; pos-- {
			width := remaining
			if width > decDigitsPerGroup {
				width = decDigitsPerGroup
			}
			appendGroup(buf, n.groupAt(pos), width)
			remaining -= width
		}
	}

	return buf.String()
}

// groupAt returns the digit group at the given power-of-10000 position, or
// zero outside the stored sequence.
func (n Numeric) groupAt(pos int) int16 {
	idx := int(n.weight) - pos
	if idx < 0 || idx >= len(n.digits) {
		return 0
	}

	return n.digits[idx]
}

// appendGroup writes the leading `width` digits of a fully padded four-digit
// group.
func appendGroup(buf *pool.ByteBuffer, group int16, width int) {
	var scratch [decDigitsPerGroup]byte
	v := group
	for i := decDigitsPerGroup - 1; i >= 0; i-- {
		scratch[i] = byte('0' + v%10)
		v /= 10
	}
	buf.MustWrite(scratch[:width])
}
