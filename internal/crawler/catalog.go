package crawler

import (
	"sjsage522/dealcollector/config"
	"sjsage522/dealcollector/helpers"
)

// SourceSitePpom is the source label of every Ppomppu variant
const SourceSitePpom = "뽐뿌"

// NewPpomCatalog returns the Ppomppu board variants in the order they are tried.
// The desktop board comes first; the mobile board is the fallback. Variants
// without a URL are left out.
func NewPpomCatalog(cfg *config.Config) []Variant {
	// Legacy desktop rows nest the title in an inner table, so markers lift
	// to the listing row classes before any plain tr.
	desktop := Selectors{
		TitleMarker: "font.list_title, span.list_title, a.baseList-title",
		Container:   "tr.baseList, tr.list0, tr.list1",
		Row:         "tr.baseList, tr.list0, tr.list1",
		Title:       "font.list_title, span.list_title, a.baseList-title",
		TitleCell:   2,
		PostNumber:  "td.eng.v_middle, td.baseList-numb",
		Thumbnail:   "img.thumb_border, a.baseList-thumb img",
	}

	mobile := Selectors{
		TitleMarker: "ul.bbsList_new span.title, ul.bbsList span.title",
		Container:   "li",
		Row:         "ul.bbsList_new > li, ul.bbsList > li",
		Title:       "span.title, strong, a[href*='no=']",
		TitleCell:   -1,
		Thumbnail:   "img",
	}

	all := []Variant{
		{
			Name:       "ppom_desktop",
			URL:        cfg.PpomURL,
			BaseURL:    helpers.ResolveURL(cfg.PpomURL, "./"),
			Charset:    cfg.SiteCharset,
			SourceSite: SourceSitePpom,
			Selectors:  desktop,
			Strategies: []RowStrategy{
				ByTitleMarker(desktop.TitleMarker, desktop.Container, "tr"),
				ByRowSelector(desktop.Row),
				ByArticleLinks(ArticleLinkPattern, desktop.Container, "tr"),
			},
		},
		{
			Name:       "ppom_mobile",
			URL:        cfg.PpomMobileURL,
			BaseURL:    helpers.ResolveURL(cfg.PpomMobileURL, "./"),
			Charset:    cfg.SiteCharset,
			SourceSite: SourceSitePpom,
			Selectors:  mobile,
			Strategies: []RowStrategy{
				ByTitleMarker(mobile.TitleMarker, mobile.Container),
				ByRowSelector(mobile.Row),
			},
		},
	}

	catalog := make([]Variant, 0, len(all))
	for _, v := range all {
		if v.URL != "" {
			catalog = append(catalog, v)
		}
	}
	return catalog
}
