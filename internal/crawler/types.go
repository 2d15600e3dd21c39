package crawler

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/dealcollector/helpers"
)

// CategoryHotDeal is the category label of every record this collector emits
const CategoryHotDeal = "핫딜"

// ListingRecord is one normalized deal. Field order matches the output columns.
type ListingRecord struct {
	Category      string `json:"category"`
	Platform      string `json:"platform"`
	ProductName   string `json:"productName"`
	CurrentPrice  int    `json:"currentPrice"`
	OriginalPrice int    `json:"originalPrice"`
	Badge         Badge  `json:"badge"`
	SourceSite    string `json:"sourceSite"`
	Link          string `json:"link"`
	Image         string `json:"image"`
	Color         string `json:"color"`
}

// Fetcher retrieves a raw document. helpers.HTTPFetcher is the production implementation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*helpers.Response, error)
}

// Selectors contains CSS selectors describing one page layout
type Selectors struct {
	// TitleMarker finds title elements directly (first row strategy)
	TitleMarker string
	// Container is the enclosing row of a title marker or article link
	Container string
	// Row finds whole listing rows structurally (second row strategy)
	Row string
	// Title finds the title inside a row
	Title string
	// TitleCell is the child index holding the title when Title finds nothing
	TitleCell int
	// PostNumber is the cell carrying the post number; empty means the
	// number is read from the link's no= parameter
	PostNumber string
	// Thumbnail finds the row's thumbnail image
	Thumbnail string
}

// Variant is one addressable layout of the source board
type Variant struct {
	Name       string
	URL        string
	BaseURL    string
	Charset    string
	SourceSite string
	Selectors  Selectors
	Strategies []RowStrategy
}

// Row is one listing candidate. Title is set when the locating strategy
// already found the title element.
type Row struct {
	Node  *goquery.Selection
	Title *goquery.Selection
}

// RawFields are the fields pulled out of a row before text parsing
type RawFields struct {
	Title      string
	Link       string
	Image      string
	PostNumber string
}

// ParsedTitle is the structured reading of a raw title
type ParsedTitle struct {
	Platform    string
	Price       int
	ProductName string
}

// SkipReason names why a row produced no record. SkipNone means it did.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipNoTitle       SkipReason = "no_title"
	SkipShortTitle    SkipReason = "short_title"
	SkipNoLink        SkipReason = "no_link"
	SkipNotice        SkipReason = "notice"
	SkipEmptyName     SkipReason = "empty_name"
	SkipInvalidRecord SkipReason = "invalid_record"
)
