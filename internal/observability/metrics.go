package observability

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	errorCount    map[string]int64
	commandCount  map[string]int64
	commandFailed map[string]int64
	commandTime   map[string]time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[string]int64),
		errorCount:    make(map[string]int64),
		commandCount:  make(map[string]int64),
		commandFailed: make(map[string]int64),
		commandTime:   make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordCommand counts an executed command by kind.
func (m *Metrics) RecordCommand(kind string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandCount[kind]++
	m.commandTime[kind] += duration
	if !success {
		m.commandFailed[kind]++
	}
}

// CommandStats summarises one command kind.
type CommandStats struct {
	Kind      string  `json:"kind"`
	Total     int64   `json:"total"`
	Failed    int64   `json:"failed"`
	AvgMillis float64 `json:"avgMillis"`
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	Requests map[string]int64 `json:"requests"`
	Errors   map[string]int64 `json:"errors"`
	Commands []CommandStats   `json:"commands"`
}

// Snapshot copies the counters; commands are sorted by kind.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{
		Requests: make(map[string]int64, len(m.requestCount)),
		Errors:   make(map[string]int64, len(m.errorCount)),
		Commands: make([]CommandStats, 0, len(m.commandCount)),
	}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for kind, total := range m.commandCount {
		avg := float64(m.commandTime[kind].Microseconds()) / 1000 / float64(total)
		snap.Commands = append(snap.Commands, CommandStats{Kind: kind, Total: total, Failed: m.commandFailed[kind], AvgMillis: avg})
	}
	sort.Slice(snap.Commands, func(i, j int) bool { return snap.Commands[i].Kind < snap.Commands[j].Kind })
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
