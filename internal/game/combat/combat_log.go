package combat

import "time"

// LogCategory groups combat log lines for UI coloring.
type LogCategory string

const (
	LogDamage      LogCategory = "damage"
	LogHeal        LogCategory = "heal"
	LogBuff        LogCategory = "buff"
	LogCombo       LogCategory = "combo"
	LogCombination LogCategory = "combination"
	LogRejected    LogCategory = "rejected"
)

// LogEntry is one line of the combat log.
type LogEntry struct {
	Message  string      `json:"message"`
	Category LogCategory `json:"category"`
	At       time.Time   `json:"at"`
}

// CombatLog is a fixed-size ring buffer of the most recent combat log lines.
// Oldest entries are overwritten once the buffer is full.
type CombatLog struct {
	entries []LogEntry
	next    int
	full    bool
}

// NewCombatLog creates a log holding up to capacity entries.
func NewCombatLog(capacity int) *CombatLog {
	return &CombatLog{entries: make([]LogEntry, max(capacity, 1))}
}

// Append stores e, evicting the oldest entry when full.
func (l *CombatLog) Append(e LogEntry) {
	l.entries[l.next] = e
	l.next++
	if l.next == len(l.entries) {
		l.next = 0
		l.full = true
	}
}

// Len returns the number of stored entries.
func (l *CombatLog) Len() int {
	if l.full {
		return len(l.entries)
	}
	return l.next
}

// Entries returns a copy of the stored entries, oldest first.
func (l *CombatLog) Entries() []LogEntry {
	if !l.full {
		out := make([]LogEntry, l.next)
		copy(out, l.entries[:l.next])
		return out
	}
	out := make([]LogEntry, 0, len(l.entries))
	out = append(out, l.entries[l.next:]...)
	out = append(out, l.entries[:l.next]...)
	return out
}
