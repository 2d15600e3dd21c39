package crawler

import "strings"

// Platform colors
const (
	ColorRed   = "red"
	ColorGreen = "green"
	ColorBlue  = "blue"
)

// PlatformColor maps a platform tag to the display palette
func PlatformColor(platform string) string {
	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "쿠팡"):
		return ColorRed
	case strings.Contains(p, "네이버"), strings.Contains(p, "n쇼핑"):
		return ColorGreen
	case strings.Contains(p, "11번가"), strings.Contains(p, "g마켓"), strings.Contains(p, "지마켓"), strings.Contains(p, "옥션"):
		return ColorRed
	default:
		return ColorBlue
	}
}
