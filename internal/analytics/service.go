package analytics

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"call-analytics/internal/calls"
)

const (
	// windowDays bounds the time-series views to a trailing window
	// relative to query time, boundary inclusive.
	windowDays = 30

	// recentLimit caps the recent-calls projection.
	recentLimit = 20

	// overheadSeconds is the fixed human overhead each automated call is
	// assumed to have replaced, counted into total_hours_saved.
	overheadSeconds = 120
)

// Service computes analytics views over the full call-record set.
// It is read-only and stateless per request; storage failures surface
// immediately, no internal retry.
type Service struct {
	repo     calls.Repository
	cache    Cache
	cacheTTL time.Duration
	clock    func() time.Time
}

// NewService builds an aggregator over repo. cache may be nil to disable
// read-through caching.
func NewService(repo calls.Repository, cache Cache, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, clock: time.Now}
}

// Report aggregates every analytics view in one pass over the record set.
// countryFilter is one of the known country codes; anything else means no
// filter. Never errors on a filter value.
func (s *Service) Report(ctx context.Context, countryFilter string) (Report, error) {
	country := ""
	if calls.KnownCountry(countryFilter) {
		country = countryFilter
	}

	cacheKey := country
	if cacheKey == "" {
		cacheKey = "all"
	}
	if s.cache != nil {
		if rep, ok, err := s.cache.GetReport(ctx, cacheKey); err == nil && ok {
			return rep, nil
		}
	}

	records, err := s.repo.List(ctx, country)
	if err != nil {
		return Report{}, err
	}

	rep := build(records, s.clock().UTC())

	if s.cache != nil {
		// Best-effort: a cache write failure never fails the query.
		_ = s.cache.SetReport(ctx, cacheKey, rep, s.cacheTTL)
	}
	return rep, nil
}

type dayAgg struct {
	count       int
	durationSum int
}

func build(records []calls.CallRecord, now time.Time) Report {
	rep := Report{
		StatusDistribution:    map[string]int{},
		SentimentDistribution: map[string]int{},
		AttemptsDistribution:  map[string]int{},
		CallsOverTime:         []DayCount{},
		DurationOverTime:      []DayDuration{},
		RecentCalls:           []RecentCall{},
		CallsByHour:           []HourCount{},
		CallsByDow:            []DowCount{},
	}

	windowStart := now.AddDate(0, 0, -windowDays)

	var (
		attemptSum  int
		durationSum int
		phones      = map[string]struct{}{}
		days        = map[string]*dayAgg{}
		byHour      = map[int]int{}
		byDow       = map[int]int{}
		recent      []calls.CallRecord
	)

	for _, rec := range records {
		rep.Summary.TotalCalls++
		if rec.CallHuman {
			rep.Summary.HumanNeeded++
		}
		attemptSum += rec.Attempt
		durationSum += rec.DurationSeconds
		phones[rec.Phone] = struct{}{}
		if rec.Status != calls.StatusVoicemail {
			rep.Summary.ConnectedCalls++
		}

		rep.StatusDistribution[rec.Status]++
		rep.SentimentDistribution[rec.Sentiment]++
		rep.AttemptsDistribution[strconv.Itoa(rec.Attempt)]++

		created := rec.CreatedAt.UTC()
		if !created.Before(windowStart) {
			key := created.Format("2006-01-02")
			agg := days[key]
			if agg == nil {
				agg = &dayAgg{}
				days[key] = agg
			}
			agg.count++
			agg.durationSum += rec.DurationSeconds
		}

		if rec.Status != calls.StatusVoicemail && rec.Status != calls.StatusFailed {
			byHour[created.Hour()]++
			byDow[int(created.Weekday())]++
		}

		recent = insertRecent(recent, rec)
	}

	total := rep.Summary.TotalCalls
	rep.Summary.TotalAttempts = attemptSum
	rep.Summary.PartnersContacted = len(phones)
	if total > 0 {
		rep.Summary.AvgAttempts = round2(float64(attemptSum) / float64(total))
		rep.Summary.AvgDuration = round1(float64(durationSum) / float64(total))
		rep.Summary.HandoffRate = round1(float64(rep.Summary.HumanNeeded) / float64(total) * 100)
	}
	rep.Summary.TotalHoursSaved = round1(float64(durationSum+overheadSeconds*total) / 3600)

	dayKeys := make([]string, 0, len(days))
	for k := range days {
		dayKeys = append(dayKeys, k)
	}
	sort.Strings(dayKeys)
	for _, k := range dayKeys {
		agg := days[k]
		rep.CallsOverTime = append(rep.CallsOverTime, DayCount{Date: k, Count: agg.count})
		rep.DurationOverTime = append(rep.DurationOverTime, DayDuration{
			Date:        k,
			AvgDuration: round1(float64(agg.durationSum) / float64(agg.count)),
		})
	}

	for h := 0; h < 24; h++ {
		if n, ok := byHour[h]; ok {
			rep.CallsByHour = append(rep.CallsByHour, HourCount{Hour: h, Count: n})
		}
	}
	for d := 0; d < 7; d++ {
		if n, ok := byDow[d]; ok {
			rep.CallsByDow = append(rep.CallsByDow, DowCount{Dow: d, Count: n})
		}
	}

	for _, rec := range recent {
		rep.RecentCalls = append(rep.RecentCalls, RecentCall{
			ID:        rec.ID,
			Phone:     rec.Phone,
			Status:    rec.Status,
			Sentiment: rec.Sentiment,
			CallHuman: rec.CallHuman,
			Summary:   rec.Summary,
			Attempt:   rec.Attempt,
			Duration:  rec.DurationSeconds,
			CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return rep
}

// insertRecent keeps the newest records, newest first, in a bounded slice.
// Each insert is O(recentLimit), so the whole pass stays linear in the
// record count. Equal timestamps keep first-seen order.
func insertRecent(recent []calls.CallRecord, rec calls.CallRecord) []calls.CallRecord {
	i := len(recent)
	for i > 0 && recent[i-1].CreatedAt.Before(rec.CreatedAt) {
		i--
	}
	if i >= recentLimit {
		return recent
	}
	if len(recent) < recentLimit {
		recent = append(recent, calls.CallRecord{})
	}
	copy(recent[i+1:], recent[i:])
	recent[i] = rec
	return recent
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
