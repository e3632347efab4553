package mock

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Latencies are recorded in microseconds, 1us to 60s, 3 significant digits.
const (
	minLatencyUs = 1
	maxLatencyUs = 60_000_000
)

// Stats collects per-route handling latencies.
type Stats struct {
	mu     sync.Mutex
	routes map[string]*routeStats
}

type routeStats struct {
	statuses  map[int]int64
	histogram *hdrhistogram.Histogram
}

// RouteSummary is the reported view of one route.
type RouteSummary struct {
	Route    string           `json:"route"`
	Count    int64            `json:"count"`
	Statuses map[int]int64    `json:"statuses"`
	Latency  LatencyQuantiles `json:"latencyMs"`
}

// LatencyQuantiles are in milliseconds.
type LatencyQuantiles struct {
	Min float64 `json:"min"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
	Max float64 `json:"max"`
}

func NewStats() *Stats {
	return &Stats{routes: make(map[string]*routeStats)}
}

// Record adds one handled request.
func (s *Stats) Record(route string, status int, duration time.Duration) {
	latencyUs := duration.Microseconds()
	if latencyUs < minLatencyUs {
		latencyUs = minLatencyUs
	}
	if latencyUs > maxLatencyUs {
		latencyUs = maxLatencyUs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.routes[route]
	if !ok {
		rs = &routeStats{
			statuses:  make(map[int]int64),
			histogram: hdrhistogram.New(minLatencyUs, maxLatencyUs, 3),
		}
		s.routes[route] = rs
	}
	rs.statuses[status]++
	_ = rs.histogram.RecordValue(latencyUs)
}

// Summary reports every route seen so far, sorted by name.
func (s *Stats) Summary() []RouteSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RouteSummary, 0, len(s.routes))
	for name, rs := range s.routes {
		statuses := make(map[int]int64, len(rs.statuses))
		for code, n := range rs.statuses {
			statuses[code] = n
		}
		h := rs.histogram
		out = append(out, RouteSummary{
			Route:    name,
			Count:    h.TotalCount(),
			Statuses: statuses,
			Latency: LatencyQuantiles{
				Min: usToMs(h.Min()),
				P50: usToMs(h.ValueAtQuantile(50)),
				P95: usToMs(h.ValueAtQuantile(95)),
				P99: usToMs(h.ValueAtQuantile(99)),
				Max: usToMs(h.Max()),
			},
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}

func usToMs(us int64) float64 {
	return float64(us) / 1000
}
