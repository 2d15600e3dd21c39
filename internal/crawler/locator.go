package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ArticleLinkPattern matches hrefs of individual board posts
var ArticleLinkPattern = regexp.MustCompile(`view\.php\?[^"]*\bno=\d+`)

// RowStrategy is one way of finding listing rows in a document.
// Locate must not modify the document.
type RowStrategy struct {
	Name   string
	Locate func(doc *goquery.Document) []Row
}

// LocateRows runs strategies in order and returns the first non-empty result
// together with the name of the strategy that produced it
func LocateRows(doc *goquery.Document, strategies []RowStrategy) (string, []Row) {
	for _, s := range strategies {
		if rows := s.Locate(doc); len(rows) > 0 {
			return s.Name, rows
		}
	}
	return "", nil
}

// ByTitleMarker finds title elements and lifts each to its enclosing row.
// Containers are tried in order; the first one enclosing the marker wins.
// A row holding several markers yields one row.
func ByTitleMarker(marker string, containers ...string) RowStrategy {
	return RowStrategy{
		Name: "title_marker",
		Locate: func(doc *goquery.Document) []Row {
			var rows []Row
			seen := make(map[*html.Node]bool)
			doc.Find(marker).Each(func(_ int, title *goquery.Selection) {
				node := closestOf(title, containers)
				if node.Length() == 0 || seen[node.Get(0)] {
					return
				}
				seen[node.Get(0)] = true
				rows = append(rows, Row{Node: node, Title: title})
			})
			return rows
		},
	}
}

// ByRowSelector takes every element matching the row selector as a row
func ByRowSelector(selector string) RowStrategy {
	return RowStrategy{
		Name: "row_selector",
		Locate: func(doc *goquery.Document) []Row {
			var rows []Row
			doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
				rows = append(rows, Row{Node: s})
			})
			return rows
		},
	}
}

// ByArticleLinks treats every link to an article as a title. The row is the
// first of containers enclosing the link, or the link itself when none does.
func ByArticleLinks(pattern *regexp.Regexp, containers ...string) RowStrategy {
	return RowStrategy{
		Name: "article_links",
		Locate: func(doc *goquery.Document) []Row {
			var rows []Row
			seen := make(map[*html.Node]bool)
			doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
				href, _ := a.Attr("href")
				if !pattern.MatchString(href) || strings.TrimSpace(a.Text()) == "" {
					return
				}
				node := closestOf(a, containers)
				if node.Length() == 0 {
					node = a
				}
				if seen[node.Get(0)] {
					return
				}
				seen[node.Get(0)] = true
				rows = append(rows, Row{Node: node, Title: a})
			})
			return rows
		},
	}
}

// closestOf returns the nearest ancestor-or-self matching the first
// selector in containers that matches at all
func closestOf(s *goquery.Selection, containers []string) *goquery.Selection {
	for _, c := range containers {
		if c == "" {
			continue
		}
		if node := s.Closest(c); node.Length() > 0 {
			return node
		}
	}
	return s.Slice(0, 0)
}
