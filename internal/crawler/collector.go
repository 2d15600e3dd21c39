package crawler

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sjsage522/dealcollector/config"
	"sjsage522/dealcollector/helpers"
	"sjsage522/dealcollector/internal"
	"sjsage522/dealcollector/logger"
	crawlerrors "sjsage522/dealcollector/pkg/errors"
	"sjsage522/dealcollector/services/metrics"
)

// debugSnippetRunes is how much of a rejected page goes to the debug log
const debugSnippetRunes = 500

type collectorState int

const (
	stateTryVariant collectorState = iota
	stateDone
	stateExhausted
)

func (s collectorState) String() string {
	switch s {
	case stateTryVariant:
		return "try_variant"
	case stateDone:
		return "done"
	case stateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Collector walks the variant catalog until one variant yields records
type Collector struct {
	catalog      []Variant
	fetcher      Fetcher
	classifier   *Classifier
	pacer        *helpers.Pacer
	cooldown     *Cooldown
	metrics      *metrics.Registry
	blockMarkers []string
	limit        int
	sortByBadge  bool
	timeout      time.Duration
}

// NewCollector creates a collector. A nil pacer means no delay between variants.
func NewCollector(cfg *config.Config, catalog []Variant, fetcher Fetcher, classifier *Classifier, pacer *helpers.Pacer, deps internal.Dependencies) *Collector {
	if pacer == nil {
		pacer = helpers.NewPacer(nil, 0, 0)
	}
	var cooldown *Cooldown
	if deps.Cache != nil {
		cooldown = NewCooldown(deps.Cache, cfg.VariantCooldown)
	}
	return &Collector{
		catalog:      catalog,
		fetcher:      fetcher,
		classifier:   classifier,
		pacer:        pacer,
		cooldown:     cooldown,
		metrics:      deps.Metrics,
		blockMarkers: cfg.BlockMarkers,
		limit:        cfg.CollectionCap,
		sortByBadge:  cfg.SortByBadge,
		timeout:      cfg.RequestTimeout,
	}
}

// Collect returns the records of the first variant that yields any.
// It fails with an exhausted error when none does.
func (c *Collector) Collect(ctx context.Context) ([]ListingRecord, error) {
	log := logger.ForCollector()

	var records []ListingRecord
	state := stateTryVariant
	i := 0

	for {
		switch state {
		case stateTryVariant:
			if i >= len(c.catalog) {
				state = stateExhausted
				log.Debug().Str("state", state.String()).Int("tried", i).Msg("state change")
				continue
			}

			v := &c.catalog[i]
			got, err := c.tryVariant(ctx, v)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			var ce *crawlerrors.CrawlerError
			if errors.As(err, &ce) && !ce.IsVariantLevel() {
				return nil, err
			}
			switch {
			case err != nil:
				c.metrics.ObserveVariant(v.Name, metrics.OutcomeFailed)
				logger.ForVariant(v.Name).WithError(err).Warn().
					Str("error_type", string(crawlerrors.TypeOf(err))).
					Msg("variant failed, falling back")
				i++
			case len(got) == 0:
				c.metrics.ObserveVariant(v.Name, metrics.OutcomeEmpty)
				logger.ForVariant(v.Name).Warn().Msg("variant yielded no records, falling back")
				i++
			default:
				c.metrics.ObserveVariant(v.Name, metrics.OutcomeCollected)
				records = got
				state = stateDone
				log.Debug().Str("state", state.String()).Str("variant", v.Name).Int("records", len(records)).Msg("state change")
			}

		case stateDone:
			if c.sortByBadge {
				sort.SliceStable(records, func(a, b int) bool {
					return records[a].Badge.Rank() > records[b].Badge.Rank()
				})
			}
			return records, nil

		case stateExhausted:
			return nil, crawlerrors.NewExhausted(len(c.catalog))
		}
	}
}

// tryVariant runs the whole pipeline for one variant. Untyped fetch failures
// become network errors; typed ones pass through unchanged.
func (c *Collector) tryVariant(ctx context.Context, v *Variant) ([]ListingRecord, error) {
	log := logger.ForVariant(v.Name)

	if c.cooldown.Active(v.Name) {
		return nil, crawlerrors.NewRateLimit(v.Name, c.cooldown.Duration())
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	fetchCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log.Debug().Str("url", v.URL).Msg("fetching")
	resp, err := c.fetcher.Fetch(fetchCtx, v.URL)
	if err != nil {
		var ce *crawlerrors.CrawlerError
		if errors.As(err, &ce) {
			return nil, err
		}
		var statusErr *helpers.StatusError
		if errors.As(err, &statusErr) && statusErr.RateLimited() {
			c.cooldown.Arm(v.Name)
			return nil, crawlerrors.New(crawlerrors.ErrorTypeRateLimit, v.Name, "server rate limited the request", err)
		}
		return nil, crawlerrors.NewNetwork(v.Name, "fetch failed", err)
	}

	text := helpers.DecodeBody(resp.Body, resp.ContentType, v.Charset)

	if marker, blocked := DetectBlock(text, c.blockMarkers); blocked {
		logSnippet(log, "blocked page", text)
		c.cooldown.Arm(v.Name)
		return nil, crawlerrors.NewBlocked(v.Name, marker)
	}

	doc, err := parseDocument(v.Name, strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	strategy, rows := LocateRows(doc, v.Strategies)
	if len(rows) == 0 {
		logSnippet(log, "no listing rows", text)
		return nil, crawlerrors.NewStructure(v.Name, "no listing rows located")
	}
	log.Debug().Str("strategy", strategy).Int("rows", len(rows)).Msg("rows located")

	records := make([]ListingRecord, 0, min(len(rows), c.limit))
	for idx, row := range rows {
		if len(records) >= c.limit {
			break
		}

		record, reason, err := c.buildRecord(v, row)
		if reason != SkipNone {
			c.metrics.ObserveSkip(v.Name, string(reason))
			ev := log.Debug().Str("strategy", strategy).Int("row", idx).Str("reason", string(reason))
			if err != nil {
				ev = ev.Err(err)
			}
			ev.Msg("row skipped")
			continue
		}
		records = append(records, record)
	}

	log.Info().Str("strategy", strategy).Int("records", len(records)).Msg("variant collected")
	return records, nil
}

func (c *Collector) buildRecord(v *Variant, row Row) (ListingRecord, SkipReason, error) {
	raw, reason := ExtractFields(v, row)
	if reason != SkipNone {
		return ListingRecord{}, reason, nil
	}

	parsed := ParseTitle(raw.Title)
	if parsed.ProductName == "" {
		return ListingRecord{}, SkipEmptyName, nil
	}

	badge := c.classifier.Classify(parsed.ProductName, parsed.Price)
	record := NewListingRecord(v, raw, parsed, badge)
	if err := record.Validate(); err != nil {
		return ListingRecord{}, SkipInvalidRecord, err
	}
	return record, SkipNone, nil
}

func parseDocument(variant string, r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, crawlerrors.NewParsing(variant, "parse HTML", err)
	}
	return doc, nil
}

func logSnippet(log *logger.Logger, msg, text string) {
	if !logger.IsDebugEnabled() {
		return
	}
	runes := []rune(text)
	if len(runes) > debugSnippetRunes {
		runes = runes[:debugSnippetRunes]
	}
	log.Debug().Str("snippet", string(runes)).Msg(msg)
}
