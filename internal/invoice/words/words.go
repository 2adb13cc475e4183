// Package words converts whole rupee amounts into English words using the
// Indian numbering system (crore, lakh, thousand).
package words

import "strings"

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
)

const (
	crore = 1_00_00_000
	lakh  = 1_00_000
)

// ToWords renders a non-negative integer as space-joined English words with
// Indian grouping. ToWords(0) returns "Zero". Negative input returns "".
func ToWords(n int64) string {
	if n < 0 {
		return ""
	}
	if n == 0 {
		return "Zero"
	}

	var b strings.Builder
	if c := n / crore; c > 0 {
		// Amounts past 99 crore recurse so arbitrarily large values group
		// as "<words> Crore" the way the hundred/lakh tiers do.
		if c > 99 {
			b.WriteString(ToWords(c))
			b.WriteString(" Crore ")
		} else {
			b.WriteString(hundreds(c))
			b.WriteString("Crore ")
		}
	}
	if l := (n % crore) / lakh; l > 0 {
		b.WriteString(hundreds(l))
		b.WriteString("Lakh ")
	}
	if t := (n % lakh) / 1000; t > 0 {
		b.WriteString(hundreds(t))
		b.WriteString("Thousand ")
	}
	if h := n % 1000; h > 0 {
		b.WriteString(hundreds(h))
	}

	return strings.TrimSpace(b.String())
}

// AmountInWords renders the spoken form printed on invoices. Fractional
// rupees are never spoken; callers pass the floored total.
func AmountInWords(n int64) string {
	return ToWords(n) + " Rupees only"
}

func hundreds(n int64) string {
	var b strings.Builder

	if n > 99 {
		b.WriteString(ones[n/100])
		b.WriteString(" Hundred ")
		n %= 100
	}

	switch {
	case n > 19:
		b.WriteString(tens[n/10])
		b.WriteString(" ")
		n %= 10
	case n > 9:
		b.WriteString(teens[n-10])
		b.WriteString(" ")
		n = 0
	}

	if n > 0 {
		b.WriteString(ones[n])
		b.WriteString(" ")
	}

	return b.String()
}
