package parser

import (
	"fmt"
	"strings"
	"time"
)

var chineseDigits = [10]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// ChineseDate transliterates a "YYYY-MM-DD" date into Chinese numerals,
// e.g. "2023-12-25" becomes "二零二三年十二月二十五日".
func ChineseDate(iso string) (string, error) {
	iso = strings.TrimSpace(iso)
	if _, err := time.Parse("2006-01-02", iso); err != nil {
		return "", fmt.Errorf("%w: date %q", ErrMalformedValue, iso)
	}

	var b strings.Builder
	for _, r := range iso[:4] {
		b.WriteString(chineseDigits[r-'0'])
	}
	b.WriteString("年")
	b.WriteString(chineseTens(iso[5:7]))
	b.WriteString("月")
	b.WriteString(chineseTens(iso[8:10]))
	b.WriteString("日")
	return b.String(), nil
}

// chineseTens renders a two-digit month or day. Whole tens drop the trailing
// zero: "10" is 十, "20" is 二十, "30" is 三十.
func chineseTens(s string) string {
	tens, ones := s[0]-'0', s[1]-'0'
	var b strings.Builder
	switch tens {
	case 0:
	case 1:
		b.WriteString("十")
	default:
		b.WriteString(chineseDigits[tens])
		b.WriteString("十")
	}
	if ones != 0 || tens == 0 {
		b.WriteString(chineseDigits[ones])
	}
	return b.String()
}
