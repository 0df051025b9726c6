package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"svodka/internal/log"
)

// The exchange session, in its local clock. 19:59:00 is the last minute
// the source carries samples for; it stands in for "close".
const (
	sessionOpenHour  = 4
	sessionCloseHour = 19
	sessionCloseMin  = 59
)

const (
	defaultMaxLookbackDays = 45
	defaultMaxPageFetches  = 3
	defaultResolveTimeout  = 30 * time.Second
)

// ResolverOptions tune a Resolver. Zero values select the defaults.
type ResolverOptions struct {
	// Now supplies the resolver's current time; tests freeze it.
	Now func() time.Time
	// Location is the exchange's local timezone.
	Location *time.Location
	// MaxLookbackDays bounds how far back the minute stepping may walk.
	MaxLookbackDays int
	// MaxPageFetches bounds how many month pages one resolution may load.
	MaxPageFetches int
	// Timeout bounds a whole Resolve call, fetches and stepping included.
	Timeout time.Duration
}

// Resolver maps an arbitrary timestamp to the closing price of the
// nearest valid trade at or before it. It never interpolates: a resolved
// price always belongs to a real sample.
type Resolver struct {
	source          IntradaySource
	now             func() time.Time
	loc             *time.Location
	maxLookbackDays int
	maxPageFetches  int
	timeout         time.Duration
	logger          *log.Logger
}

func NewResolver(source IntradaySource, logger *log.Logger, opts ResolverOptions) *Resolver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = Eastern()
	}
	if opts.MaxLookbackDays <= 0 {
		opts.MaxLookbackDays = defaultMaxLookbackDays
	}
	if opts.MaxPageFetches <= 0 {
		opts.MaxPageFetches = defaultMaxPageFetches
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultResolveTimeout
	}
	return &Resolver{
		source:          source,
		now:             opts.Now,
		loc:             opts.Location,
		maxLookbackDays: opts.MaxLookbackDays,
		maxPageFetches:  opts.MaxPageFetches,
		timeout:         opts.Timeout,
		logger:          logger.WithComponent(log.ComponentMarket),
	}
}

// Eastern returns the US Eastern timezone, falling back to a fixed EST
// offset when no timezone database is available.
func Eastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// Resolve finds the closing price at or before ts, rounded to two
// decimals.
//
// The timestamp is first moved onto the session clock: a request for the
// in-progress session day falls back to the prior day's close (the source
// has no data for it yet), a time past 19:59:00 clamps down to it, and a
// time before 04:00:00 falls back to the previous close. From there it
// steps backward one minute at a time until a sample exists, wrapping
// across session and month boundaries, so sparse low-volume minutes are
// skipped rather than guessed at. Stepping is monotonic, so the one page
// held at a time is exactly the per-call page cache.
func (r *Resolver) Resolve(ctx context.Context, symbol string, ts time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	t := ts.In(r.loc)
	today := r.now().In(r.loc)
	if sameDay(t, today) {
		t = r.prevClose(t)
	}
	switch {
	case afterClose(t):
		t = r.sessionClose(t)
	case beforeOpen(t):
		t = r.prevClose(t)
	}
	t = t.Truncate(time.Minute)

	floor := t.AddDate(0, 0, -r.maxLookbackDays)
	pageMonth := monthStart(t)
	page, err := r.source.FetchMonth(ctx, symbol, pageMonth.Format(MonthLayout))
	if err != nil {
		return 0, err
	}
	fetches := 1

	for {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("resolve %s: %w", symbol, err)
		}
		if price, ok := page[t.Format(MinuteLayout)]; ok {
			return decimal.NewFromFloat(price).Round(2).InexactFloat64(), nil
		}

		t = t.Add(-time.Minute)
		if beforeOpen(t) {
			t = r.prevClose(t)
		}
		if t.Before(floor) {
			return 0, fmt.Errorf("%w: %s: walked back past %s", ErrPriceUnresolved, symbol, floor.Format(MinuteLayout))
		}
		if t.Before(pageMonth) {
			if fetches >= r.maxPageFetches {
				return 0, fmt.Errorf("%w: %s: page fetch limit reached", ErrPriceUnresolved, symbol)
			}
			pageMonth = monthStart(t)
			r.logger.Debug("Stepping into earlier month", log.FieldSymbol, symbol, "month", pageMonth.Format(MonthLayout))
			page, err = r.source.FetchMonth(ctx, symbol, pageMonth.Format(MonthLayout))
			if err != nil {
				return 0, err
			}
			fetches++
		}
	}
}

// sessionClose returns 19:59:00 on t's day.
func (r *Resolver) sessionClose(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, sessionCloseHour, sessionCloseMin, 0, 0, r.loc)
}

// prevClose returns 19:59:00 on the day before t.
func (r *Resolver) prevClose(t time.Time) time.Time {
	return r.sessionClose(t.AddDate(0, 0, -1))
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func beforeOpen(t time.Time) bool {
	return t.Hour() < sessionOpenHour
}

func afterClose(t time.Time) bool {
	h, m, s := t.Clock()
	return h > sessionCloseHour || (h == sessionCloseHour && m == sessionCloseMin && s > 0)
}
