package crawler

import (
	"strings"

	"sjsage522/dealcollector/config"
)

// Badge is the recommendation label attached to a record
type Badge string

const (
	BadgeNew         Badge = "NEW"
	BadgeHot         Badge = "HOT"
	BadgeRecommended Badge = "엄마 추천"
	BadgePriority    Badge = "강력 추천"
)

// Rank orders badges for display; higher comes first. Unknown badges rank -1.
func (b Badge) Rank() int {
	switch b {
	case BadgePriority:
		return 3
	case BadgeRecommended:
		return 2
	case BadgeHot:
		return 1
	case BadgeNew:
		return 0
	default:
		return -1
	}
}

// Valid reports whether b is one of the known badges
func (b Badge) Valid() bool {
	return b.Rank() >= 0
}

// Classifier assigns badges. The first matching rule wins:
// priority keyword, recommended keyword, price above threshold, default.
type Classifier struct {
	priority     []string
	recommended  []string
	hotThreshold int
}

// NewClassifier creates a classifier from keyword data
func NewClassifier(kw config.Keywords, hotThreshold int) *Classifier {
	return &Classifier{
		priority:     append([]string(nil), kw.Priority...),
		recommended:  append([]string(nil), kw.Recommended...),
		hotThreshold: hotThreshold,
	}
}

// Classify returns the badge for a product name and price
func (c *Classifier) Classify(productName string, price int) Badge {
	switch {
	case containsAny(productName, c.priority):
		return BadgePriority
	case containsAny(productName, c.recommended):
		return BadgeRecommended
	case price > c.hotThreshold:
		return BadgeHot
	default:
		return BadgeNew
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
