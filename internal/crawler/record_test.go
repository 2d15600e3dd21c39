package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateOriginalPrice(t *testing.T) {
	assert.Equal(t, 20670, EstimateOriginalPrice(15900))
	assert.Equal(t, 51870, EstimateOriginalPrice(39900))
	assert.Equal(t, 7, EstimateOriginalPrice(5))
	assert.Equal(t, 1, EstimateOriginalPrice(1))
	assert.Equal(t, 0, EstimateOriginalPrice(0))
	assert.Equal(t, 1_300_000_000_000, EstimateOriginalPrice(MaxPrice))
	assert.Equal(t, 0, EstimateOriginalPrice(999999999999999999))
}

func TestPlatformColor(t *testing.T) {
	assert.Equal(t, ColorRed, PlatformColor("쿠팡"))
	assert.Equal(t, ColorRed, PlatformColor("쿠팡 로켓배송"))
	assert.Equal(t, ColorGreen, PlatformColor("네이버"))
	assert.Equal(t, ColorGreen, PlatformColor("N쇼핑"))
	assert.Equal(t, ColorRed, PlatformColor("G마켓"))
	assert.Equal(t, ColorRed, PlatformColor("11번가"))
	assert.Equal(t, ColorRed, PlatformColor("옥션"))
	assert.Equal(t, ColorBlue, PlatformColor("기타"))
	assert.Equal(t, ColorBlue, PlatformColor("알리익스프레스"))
}

func TestPlaceholderImage(t *testing.T) {
	assert.Equal(t, "https://placehold.co/80x80/f1f5f9/94a3b8?text=%EC%BF%A0", PlaceholderImage("쿠팡"))
	assert.Equal(t, "https://placehold.co/80x80/f1f5f9/94a3b8?text=G", PlaceholderImage("G마켓"))
}

func TestNewListingRecord(t *testing.T) {
	v := &Variant{Name: "test", SourceSite: SourceSitePpom}
	raw := RawFields{
		Title:      "[쿠팡] 유선 키보드 39,900원",
		Link:       "https://www.ppomppu.co.kr/zboard/view.php?id=ppomppu&no=1",
		PostNumber: "1",
	}
	parsed := ParseTitle(raw.Title)

	record := NewListingRecord(v, raw, parsed, BadgeNew)
	require.NoError(t, record.Validate())

	assert.Equal(t, CategoryHotDeal, record.Category)
	assert.Equal(t, "쿠팡", record.Platform)
	assert.Equal(t, 39900, record.CurrentPrice)
	assert.Equal(t, 51870, record.OriginalPrice)
	assert.Equal(t, SourceSitePpom, record.SourceSite)
	assert.Equal(t, PlaceholderImage("쿠팡"), record.Image)
	assert.Equal(t, ColorRed, record.Color)
}

func TestValidateRejectsBrokenRecords(t *testing.T) {
	valid := ListingRecord{
		Category:      CategoryHotDeal,
		Platform:      "기타",
		ProductName:   "상품",
		CurrentPrice:  1000,
		OriginalPrice: 1300,
		Badge:         BadgeNew,
		SourceSite:    SourceSitePpom,
		Link:          "https://example.com/view.php?no=1",
		Image:         "https://example.com/a.jpg",
		Color:         ColorBlue,
	}
	require.NoError(t, valid.Validate())

	broken := valid
	broken.ProductName = " "
	assert.Error(t, broken.Validate())

	broken = valid
	broken.Link = "view.php?no=1"
	assert.Error(t, broken.Validate())

	broken = valid
	broken.OriginalPrice = 1200
	assert.Error(t, broken.Validate())

	broken = valid
	broken.Badge = "SALE"
	assert.Error(t, broken.Validate())

	broken = valid
	broken.Color = "purple"
	assert.Error(t, broken.Validate())
}
