package crawler

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"sjsage522/dealcollector/config"
)

const (
	testDesktopURL = "https://www.ppomppu.co.kr/zboard/zboard.php?id=ppomppu"
	testMobileURL  = "https://m.ppomppu.co.kr/new/bbs_list.php?id=ppomppu"
)

func testConfig() *config.Config {
	return &config.Config{
		PpomURL:           testDesktopURL,
		PpomMobileURL:     testMobileURL,
		SiteCharset:       "euc-kr",
		HotPriceThreshold: 100000,
		CollectionCap:     25,
		RequestTimeout:    5 * time.Second,
		BlockMarkers:      config.DefaultBlockMarkers,
		VariantCooldown:   10 * time.Minute,
	}
}

func testCatalog(t *testing.T) (desktop, mobile *Variant) {
	t.Helper()
	catalog := NewPpomCatalog(testConfig())
	require.Len(t, catalog, 2)
	return &catalog[0], &catalog[1]
}

func newDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// desktopRow renders one desktop board row in the current layout
func desktopRow(no int, title string) string {
	return fmt.Sprintf(`
<tr class="baseList bbs_new1">
  <td class="baseList-space baseList-numb">%d</td>
  <td class="baseList-space title">
    <a class="baseList-thumb" href="view.php?id=ppomppu&no=%d"><img src="//cdn.ppomppu.co.kr/thumbs/%d.jpg"></a>
    <div class="baseList-cover"><a class="baseList-title" href="view.php?id=ppomppu&no=%d"><span>%s</span></a></div>
  </td>
</tr>`, no, no, no, no, title)
}

const desktopNoticeRow = `
<tr class="baseList">
  <td class="baseList-space baseList-numb"><img src="/zboard/skin/notice.gif"></td>
  <td class="baseList-space title">
    <div class="baseList-cover"><a class="baseList-title" href="view.php?id=ppomppu&no=1">[공지] 뽐뿌 게시판 이용 안내</a></div>
  </td>
</tr>`

func desktopPage(rows ...string) string {
	return `<html><body><table class="board_table">` + strings.Join(rows, "") + `</table></body></html>`
}

func mobilePage(items ...string) string {
	return `<html><body><ul class="bbsList_new">` + strings.Join(items, "") + `</ul></body></html>`
}

func mobileItem(no int, title string) string {
	return fmt.Sprintf(`<li><a href="bbs_view.php?id=ppomppu&no=%d"><div class="thmb"><img src="//cdn2.ppomppu.co.kr/m/%d.jpg"></div><span class="title">%s</span></a></li>`, no, no, title)
}
