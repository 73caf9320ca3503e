package contentapi

import "strings"

// ParsePrice extracts the integer amount from a backend-rendered price
// string ("۱۲۳,۰۰۰ تومان", "12,000&nbsp;T", markup included). Localized
// digits are mapped to ASCII first, everything else is dropped. An empty or
// digit-free string parses to 0, the "contact for quote" sentinel.
func ParsePrice(rendered string) int64 {
	var total int64
	for _, r := range rendered {
		d := digitValue(r)
		if d < 0 {
			continue
		}
		total = total*10 + int64(d)
	}
	return total
}

// NormalizeDigits maps Persian and Arabic-Indic digits in s to their ASCII
// equivalents, leaving everything else untouched.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if d := digitValue(r); d >= 0 {
			b.WriteByte(byte('0' + d))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= '۰' && r <= '۹': // Persian
		return int(r - '۰')
	case r >= '٠' && r <= '٩': // Arabic-Indic
		return int(r - '٠')
	}
	return -1
}
