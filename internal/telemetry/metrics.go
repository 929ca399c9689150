// Package telemetry provides observability for the Vault Runner
// interpreter and its CLI.
package telemetry

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// Metrics collects Prometheus-style metrics for program runs.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	runsTotal  map[string]int64 // key: map,status
	stepsTotal map[string]int64 // key: map

	// Histograms (simplified: bucket counts + sum + count)
	runDurations map[string]*histogram // key: map
	runSteps     map[string]*histogram // key: map
}

type histogram struct {
	buckets []float64
	counts  []int64
	sum     float64
	count   int64
}

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// stepBuckets track the execution budget; the top bucket is the
// default step ceiling.
var stepBuckets = []float64{10, 25, 50, 100, 250, 500, 1000}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]int64, len(buckets)+1), // +1 for +Inf
	}
}

// observe files the value into its first matching bucket; the handler
// accumulates the buckets when rendering.
func (h *histogram) observe(value float64) {
	h.sum += value
	h.count++
	for i, b := range h.buckets {
		if value <= b {
			h.counts[i]++
			return
		}
	}
	h.counts[len(h.buckets)]++
}

// NewMetrics creates a new Metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		runsTotal:    make(map[string]int64),
		stepsTotal:   make(map[string]int64),
		runDurations: make(map[string]*histogram),
		runSteps:     make(map[string]*histogram),
	}
}

// RecordRun records a completed program run.
func (m *Metrics) RecordRun(mapName, status string, steps int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s,%s", mapName, status)
	m.runsTotal[key]++
	m.stepsTotal[mapName] += int64(steps)

	d, ok := m.runDurations[mapName]
	if !ok {
		d = newHistogram(durationBuckets)
		m.runDurations[mapName] = d
	}
	d.observe(duration.Seconds())

	s, ok := m.runSteps[mapName]
	if !ok {
		s = newHistogram(stepBuckets)
		m.runSteps[mapName] = s
	}
	s.observe(float64(steps))
}

// Render returns the collected metrics in Prometheus text format.
func (m *Metrics) Render() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var sb strings.Builder

	sb.WriteString("# HELP vaultrunner_runs_total Total program runs\n")
	sb.WriteString("# TYPE vaultrunner_runs_total counter\n")
	for _, key := range sortedKeys(m.runsTotal) {
		parts := strings.SplitN(key, ",", 2)
		fmt.Fprintf(&sb, "vaultrunner_runs_total{map=%q,status=%q} %d\n",
			parts[0], parts[1], m.runsTotal[key])
	}
	sb.WriteString("\n")

	sb.WriteString("# HELP vaultrunner_steps_total Execution steps consumed\n")
	sb.WriteString("# TYPE vaultrunner_steps_total counter\n")
	for _, key := range sortedKeys(m.stepsTotal) {
		fmt.Fprintf(&sb, "vaultrunner_steps_total{map=%q} %d\n", key, m.stepsTotal[key])
	}
	sb.WriteString("\n")

	writeHistogram(&sb, "vaultrunner_run_duration_seconds", "Run duration", m.runDurations)
	sb.WriteString("\n")
	writeHistogram(&sb, "vaultrunner_run_steps", "Steps per run", m.runSteps)

	return sb.String()
}

// Handler returns an HTTP handler that serves Prometheus-format metrics.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(m.Render()))
	})
}

func writeHistogram(sb *strings.Builder, name, help string, hists map[string]*histogram) {
	fmt.Fprintf(sb, "# HELP %s %s\n", name, help)
	fmt.Fprintf(sb, "# TYPE %s histogram\n", name)
	for _, mapName := range sortedMapKeys(hists) {
		h := hists[mapName]
		cumulative := int64(0)
		for i, b := range h.buckets {
			cumulative += h.counts[i]
			fmt.Fprintf(sb, "%s_bucket{map=%q,le=\"%.3g\"} %d\n", name, mapName, b, cumulative)
		}
		cumulative += h.counts[len(h.buckets)]
		fmt.Fprintf(sb, "%s_bucket{map=%q,le=\"+Inf\"} %d\n", name, mapName, cumulative)
		fmt.Fprintf(sb, "%s_sum{map=%q} %.6f\n", name, mapName, h.sum)
		fmt.Fprintf(sb, "%s_count{map=%q} %d\n", name, mapName, h.count)
	}
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
