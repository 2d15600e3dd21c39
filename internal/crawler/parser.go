package crawler

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultPlatform labels titles that carry no [platform] tag
const DefaultPlatform = "기타"

// MaxPrice is the largest price read from a title. Larger numbers are
// treated as unparsable so the original price estimate cannot overflow.
const MaxPrice = 1_000_000_000_000

var (
	platformRegex = regexp.MustCompile(`\[(.*?)\]`)
	bracketRegex  = regexp.MustCompile(`\[.*?\]`)
	parenRegex    = regexp.MustCompile(`\(.*?\)`)

	// 15,900원 / 1,234,567 원
	wonPriceRegex = regexp.MustCompile(`([\d,]+)\s*원`)
	// a free-standing comma grouped number such as 3,500
	groupedNumberRegex = regexp.MustCompile(`(?:^|[^\d,])(\d{1,3}(?:,\d{3})+)(?:[^\d,]|$)`)
)

// ParseTitle derives the platform, price and clean product name from a raw title
func ParseTitle(title string) ParsedTitle {
	return ParsedTitle{
		Platform:    ExtractPlatform(title),
		Price:       ExtractPrice(title),
		ProductName: CleanProductName(title),
	}
}

// ExtractPlatform returns the inner text of the first [..] segment
func ExtractPlatform(title string) string {
	match := platformRegex.FindStringSubmatch(title)
	if match == nil {
		return DefaultPlatform
	}
	if platform := strings.TrimSpace(match[1]); platform != "" {
		return platform
	}
	return DefaultPlatform
}

// ExtractPrice returns the price in won, or 0 when the title carries none
func ExtractPrice(title string) int {
	if match := wonPriceRegex.FindStringSubmatch(title); match != nil {
		if price, ok := parseGroupedInt(match[1]); ok {
			return price
		}
	}
	if match := groupedNumberRegex.FindStringSubmatch(title); match != nil {
		if price, ok := parseGroupedInt(match[1]); ok {
			return price
		}
	}
	return 0
}

func parseGroupedInt(s string) (int, bool) {
	digits := strings.ReplaceAll(s, ",", "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > MaxPrice {
		return 0, false
	}
	return n, true
}

// CleanProductName strips [..] and (..) segments and collapses whitespace
func CleanProductName(title string) string {
	name := bracketRegex.ReplaceAllString(title, " ")
	name = parenRegex.ReplaceAllString(name, " ")
	return strings.Join(strings.Fields(name), " ")
}
