package engine

import "time"

// MaxBuckets caps one series. Bucket stops after this many periods; Service.Series
// rejects ranges that need more.
const MaxBuckets = 3660

// StatTimeSeriesBucket sums deltas over [PeriodStart, PeriodEnd).
type StatTimeSeriesBucket struct {
	Period      AggregationPeriod `json:"period"`
	PeriodStart time.Time         `json:"periodStart"`
	PeriodEnd   time.Time         `json:"periodEnd"`
	Totals      StatVector        `json:"totals"`
}

// BucketOptions bounds the bucket range. A zero From or To falls back to the
// earliest or latest entry timestamp.
type BucketOptions struct {
	From     time.Time
	To       time.Time
	Location *time.Location
}

// Bucket groups entry deltas into contiguous calendar periods, oldest first.
// Periods without activity still get a zero bucket. With no entries and no
// explicit range the result is empty; with an explicit range it is zero-filled.
// At most MaxBuckets periods are built, starting from the oldest.
func Bucket(entries []ProgressLogEntry, period AggregationPeriod, opts BucketOptions) []StatTimeSeriesBucket {
	period, loc := bucketSettings(period, opts)

	from, to, ok := bucketRange(entries, opts)
	if !ok || to.Before(from) {
		return []StatTimeSeriesBucket{}
	}

	var buckets []StatTimeSeriesBucket
	index := map[int64]int{}
	for start := PeriodStart(from.In(loc), period); !start.After(to) && len(buckets) < MaxBuckets; {
		end := NextPeriodStart(start, period)
		index[start.Unix()] = len(buckets)
		buckets = append(buckets, StatTimeSeriesBucket{
			Period:      period,
			PeriodStart: start,
			PeriodEnd:   end,
			Totals:      Zero(),
		})
		start = end
	}

	for _, e := range entries {
		// Entries outside the range have no bucket.
		i, ok := index[PeriodStart(e.Timestamp.In(loc), period).Unix()]
		if !ok {
			continue
		}
		buckets[i].Totals = Add(buckets[i].Totals, e.StatDelta)
	}
	return buckets
}

// ExceedsMaxBuckets reports whether Bucket would need more than MaxBuckets
// periods for this range. It walks at most MaxBuckets+1 periods.
func ExceedsMaxBuckets(entries []ProgressLogEntry, period AggregationPeriod, opts BucketOptions) bool {
	period, loc := bucketSettings(period, opts)
	from, to, ok := bucketRange(entries, opts)
	if !ok || to.Before(from) {
		return false
	}
	n := 0
	for start := PeriodStart(from.In(loc), period); !start.After(to); start = NextPeriodStart(start, period) {
		n++
		if n > MaxBuckets {
			return true
		}
	}
	return false
}

func bucketSettings(period AggregationPeriod, opts BucketOptions) (AggregationPeriod, *time.Location) {
	if !period.IsValid() {
		period = PeriodDay
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return period, loc
}

func bucketRange(entries []ProgressLogEntry, opts BucketOptions) (from, to time.Time, ok bool) {
	var earliest, latest time.Time
	for i, e := range entries {
		if i == 0 || e.Timestamp.Before(earliest) {
			earliest = e.Timestamp
		}
		if i == 0 || e.Timestamp.After(latest) {
			latest = e.Timestamp
		}
	}

	from, to = opts.From, opts.To
	if from.IsZero() {
		from = earliest
	}
	if to.IsZero() {
		to = latest
	}
	if from.IsZero() {
		from = to
	}
	if to.IsZero() {
		to = from
	}
	return from, to, !from.IsZero()
}
