package crawler

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/dealcollector/helpers"
)

// MinTitleRunes is the shortest title accepted as a listing
const MinTitleRunes = 5

// thumbnailAttrs in lookup order; lazy-loading boards move the real URL out of src
var thumbnailAttrs = []string{"src", "data-original", "data-src", "data-lazy-src"}

// ExtractFields pulls the raw fields out of a located row. A non-empty
// SkipReason means the row is not a listing.
func ExtractFields(v *Variant, row Row) (RawFields, SkipReason) {
	titleSel := findTitle(v.Selectors, row)
	if titleSel == nil || titleSel.Length() == 0 {
		return RawFields{}, SkipNoTitle
	}

	title := collapseSpaces(titleSel.Text())
	if title == "" {
		return RawFields{}, SkipNoTitle
	}
	if utf8.RuneCountInString(title) < MinTitleRunes {
		return RawFields{}, SkipShortTitle
	}

	link := findLink(v.BaseURL, titleSel)
	if link == "" {
		return RawFields{}, SkipNoLink
	}

	postNumber, ok := findPostNumber(v.Selectors, row, link)
	if !ok {
		return RawFields{}, SkipNotice
	}

	return RawFields{
		Title:      title,
		Link:       link,
		Image:      findThumbnail(v, row),
		PostNumber: postNumber,
	}, SkipNone
}

func findTitle(sel Selectors, row Row) *goquery.Selection {
	if row.Title != nil && row.Title.Length() > 0 {
		return row.Title
	}
	if sel.Title != "" {
		if t := row.Node.Find(sel.Title).First(); t.Length() > 0 {
			return t
		}
	}
	if sel.TitleCell < 0 {
		return nil
	}
	cell := row.Node.Children().Eq(sel.TitleCell)
	if a := cell.Find("a").First(); a.Length() > 0 {
		return a
	}
	return cell
}

// findLink resolves the hyperlink owning the title: the nearest anchor
// at or above it, else the first anchor inside it
func findLink(baseURL string, titleSel *goquery.Selection) string {
	anchor := titleSel.Closest("a[href]")
	if anchor.Length() == 0 {
		anchor = titleSel.Find("a[href]").First()
	}
	if anchor.Length() == 0 {
		return ""
	}
	href, _ := anchor.Attr("href")
	return helpers.ResolveURL(baseURL, href)
}

// findPostNumber reports false for rows that are not ordinary posts
// (notices, ads, pinned entries)
func findPostNumber(sel Selectors, row Row, link string) (string, bool) {
	if sel.PostNumber != "" {
		if cell := row.Node.Find(sel.PostNumber).First(); cell.Length() > 0 {
			if cell.Find("img").Length() > 0 {
				return "", false
			}
			number := strings.TrimSpace(cell.Text())
			if !isDigits(number) {
				return "", false
			}
			return number, true
		}
	}

	number := helpers.PostNumberFromLink(link)
	if !isDigits(number) {
		return "", false
	}
	return number, true
}

func findThumbnail(v *Variant, row Row) string {
	if v.Selectors.Thumbnail == "" {
		return ""
	}
	img := row.Node.Find(v.Selectors.Thumbnail).First()
	if img.Length() == 0 {
		return ""
	}
	for _, attr := range thumbnailAttrs {
		src := strings.TrimSpace(img.AttrOr(attr, ""))
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		if resolved := helpers.ResolveURL(v.BaseURL, src); resolved != "" {
			return resolved
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
