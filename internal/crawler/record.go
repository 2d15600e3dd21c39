package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const placeholderImageURL = "https://placehold.co/80x80/f1f5f9/94a3b8?text="

// PlaceholderImage returns the stand-in thumbnail keyed by the platform's first character
func PlaceholderImage(platform string) string {
	r, _ := utf8.DecodeRuneInString(platform)
	if r == utf8.RuneError {
		return placeholderImageURL
	}
	return placeholderImageURL + url.QueryEscape(string(r))
}

// EstimateOriginalPrice marks the current price up by 30%, rounded half up.
// It is an estimate for display, not an observed list price. Prices outside
// (0, MaxPrice] estimate to 0.
func EstimateOriginalPrice(price int) int {
	if price <= 0 || price > MaxPrice {
		return 0
	}
	return (price*13 + 5) / 10
}

// NewListingRecord assembles a record from extracted and parsed fields
func NewListingRecord(v *Variant, raw RawFields, parsed ParsedTitle, badge Badge) ListingRecord {
	image := raw.Image
	if image == "" {
		image = PlaceholderImage(parsed.Platform)
	}

	price := parsed.Price
	if price < 0 {
		price = 0
	}

	return ListingRecord{
		Category:      CategoryHotDeal,
		Platform:      parsed.Platform,
		ProductName:   parsed.ProductName,
		CurrentPrice:  price,
		OriginalPrice: EstimateOriginalPrice(price),
		Badge:         badge,
		SourceSite:    v.SourceSite,
		Link:          raw.Link,
		Image:         image,
		Color:         PlatformColor(parsed.Platform),
	}
}

// Validate checks every record invariant
func (r ListingRecord) Validate() error {
	var errs []error
	if strings.TrimSpace(r.ProductName) == "" {
		errs = append(errs, errors.New("empty product name"))
	}
	if !isAbsoluteHTTP(r.Link) {
		errs = append(errs, fmt.Errorf("link %q is not an absolute URL", r.Link))
	}
	if !isAbsoluteHTTP(r.Image) {
		errs = append(errs, fmt.Errorf("image %q is not an absolute URL", r.Image))
	}
	if r.CurrentPrice < 0 || r.OriginalPrice < 0 {
		errs = append(errs, errors.New("negative price"))
	}
	if r.OriginalPrice != EstimateOriginalPrice(r.CurrentPrice) {
		errs = append(errs, fmt.Errorf("original price %d does not match estimate for %d", r.OriginalPrice, r.CurrentPrice))
	}
	if !r.Badge.Valid() {
		errs = append(errs, fmt.Errorf("unknown badge %q", r.Badge))
	}
	switch r.Color {
	case ColorRed, ColorGreen, ColorBlue:
	default:
		errs = append(errs, fmt.Errorf("unknown color %q", r.Color))
	}
	return errors.Join(errs...)
}

func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
