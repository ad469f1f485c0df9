package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	SearchesTotal     uint64            `json:"searches_total"`
	ListingsScraped   uint64            `json:"listings_scraped"`
	ExportsTotal      uint64            `json:"exports_total"`
	ErrorsTotal       uint64            `json:"errors_total"`
	SearchSecondsAvg  float64           `json:"search_seconds_avg"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	searchesTotal   uint64
	listingsScraped uint64
	exportsTotal    uint64
	errorsTotal     uint64

	searchCount uint64
	searchNanos uint64

	statsMu           sync.Mutex
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncSearch() {
	atomic.AddUint64(&searchesTotal, 1)
}

func AddListingsScraped(n int) {
	if n <= 0 {
		return
	}
	atomic.AddUint64(&listingsScraped, uint64(n))
}

func IncExport() {
	atomic.AddUint64(&exportsTotal, 1)
}

func ObserveSearchDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	atomic.AddUint64(&searchCount, 1)
	atomic.AddUint64(&searchNanos, uint64(seconds*1e9))
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	count := atomic.LoadUint64(&searchCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&searchNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		SearchesTotal:     atomic.LoadUint64(&searchesTotal),
		ListingsScraped:   atomic.LoadUint64(&listingsScraped),
		ExportsTotal:      atomic.LoadUint64(&exportsTotal),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		SearchSecondsAvg:  avg,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
