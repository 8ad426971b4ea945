package conflict

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/cxd309/corridor-engine/internal/monitoring"
	"github.com/cxd309/corridor-engine/internal/train"
)

// DefaultLogCapacity is the number of entries a Log keeps before evicting
// the oldest.
const DefaultLogCapacity = 500

// Entry is a deduplicated, time-stamped conflict record.
type Entry struct {
	Key        string    `json:"key"`
	Minute     int       `json:"minute"`
	Trains     [2]string `json:"trains"` // sorted
	GapMeters  float64   `json:"gap_m"`
	Suggestion string    `json:"suggestion"`
}

// Clock renders the entry's minute as HH:MM.
func (e Entry) Clock() string { return train.FormatClock(float64(e.Minute)) }

// Mentions reports whether name is one of the two trains.
func (e Entry) Mentions(name string) bool { return e.Trains[0] == name || e.Trains[1] == name }

// Log retains conflict entries over simulated time, one per train pair and
// rounded minute, evicting the oldest once capacity is exceeded.
type Log struct {
	capacity int
	entries  []Entry
	keys     map[pairMinute]struct{}
	evicted  int
}

// pairMinute identifies an entry. Names are kept apart so that no choice of
// train names can make two pairs collide.
type pairMinute struct {
	a, b   string // sorted
	minute int
}

func (e Entry) dedupKey() pairMinute {
	return pairMinute{a: e.Trains[0], b: e.Trains[1], minute: e.Minute}
}

// NewLog returns a Log holding up to capacity entries. Non-positive
// capacities use DefaultLogCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{capacity: capacity, keys: make(map[pairMinute]struct{})}
}

// RoundMinute rounds a simulated time to the nearest whole minute, floored at 0.
func RoundMinute(simMinutes float64) int {
	if math.IsNaN(simMinutes) || simMinutes < 0 {
		return 0
	}
	return int(math.Round(simMinutes))
}

// Key renders the pair and rounded minute of an entry for display.
func Key(nameA, nameB string, minute int) string {
	pair := sortedPair(nameA, nameB)
	return fmt.Sprintf("%s|%s@%d", pair[0], pair[1], minute)
}

func sortedPair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Record adds an entry for each event not already logged at the same rounded
// minute. It reports whether anything new was added.
func (l *Log) Record(events []Event, simMinutes float64) bool {
	return len(l.RecordEntries(events, simMinutes)) > 0
}

// RecordEntries is Record returning the entries that were added.
func (l *Log) RecordEntries(events []Event, simMinutes float64) []Entry {
	minute := RoundMinute(simMinutes)
	var added []Entry
	for _, ev := range events {
		pair := sortedPair(ev.A.Name, ev.B.Name)
		key := pairMinute{a: pair[0], b: pair[1], minute: minute}
		if _, seen := l.keys[key]; seen {
			continue
		}
		e := Entry{
			Key:        Key(pair[0], pair[1], minute),
			Minute:     minute,
			Trains:     pair,
			GapMeters:  ev.GapMeters,
			Suggestion: Suggest(ev),
		}
		l.keys[key] = struct{}{}
		l.entries = append(l.entries, e)
		added = append(added, e)
		if len(l.entries) > l.capacity {
			l.evictOldest()
		}
	}
	return added
}

func (l *Log) evictOldest() {
	oldest := l.entries[0]
	l.entries = slices.Delete(l.entries, 0, 1)
	delete(l.keys, oldest.dedupKey())
	l.evicted++
	if l.evicted == 1 {
		monitoring.Logf("conflict log full (%d entries), evicting oldest entries", l.capacity)
	}
}

// Query returns the entries ordered by minute. A non-empty name keeps only
// entries mentioning that train.
func (l *Log) Query(name string) []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if name == "" || e.Mentions(name) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int { return cmp.Compare(a.Minute, b.Minute) })
	return out
}

// Entries returns all entries in insertion order.
func (l *Log) Entries() []Entry { return slices.Clone(l.entries) }

// Len returns the number of retained entries.
func (l *Log) Len() int { return len(l.entries) }

// Capacity returns the maximum number of retained entries.
func (l *Log) Capacity() int { return l.capacity }

// Evicted returns how many entries have been dropped to stay within capacity.
func (l *Log) Evicted() int { return l.evicted }

// Reset empties the log.
func (l *Log) Reset() {
	l.entries = nil
	l.keys = make(map[pairMinute]struct{})
	l.evicted = 0
}

// Suggest proposes a remediation for ev: delay the trailing train (the one
// further back) long enough to cover the clearance deficit, or slow it down
// briefly when the deficit is too small to be worth a delay.
func Suggest(ev Event) string {
	deficit := math.Max(0, SafeDistanceKm*1000-ev.GapMeters)
	if !(deficit > 0) {
		return ""
	}
	trailing := ev.A
	if ev.B.DistanceKm < ev.A.DistanceKm {
		trailing = ev.B
	}
	speed := math.Max(trailing.SpeedKmh, 1)
	delay := int(math.Ceil(deficit / 1000 / speed * 60))
	if delay > 0 {
		return fmt.Sprintf("Delay %s by %d min", trailing.Name, delay)
	}
	return fmt.Sprintf("Reduce %s speed briefly", trailing.Name)
}
