package calculator

import "sync"

// Ledger is an append-only, insertion-ordered log of records.
// It is safe for concurrent use.
type Ledger struct {
	mu      sync.RWMutex
	records []Record
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends r to the end of the ledger.
func (l *Ledger) Record(r Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, r)
}

// All returns a copy of every record in append order.
func (l *Ledger) All() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Clear removes every record.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = nil
}

// Latest returns the most recently appended record. ok is false when the
// ledger is empty.
func (l *Ledger) Latest() (r Record, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.records) == 0 {
		return Record{}, false
	}
	return l.records[len(l.records)-1], true
}

// FindByOperationName returns the records whose operation name equals name,
// in append order.
func (l *Ledger) FindByOperationName(name string) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Record, 0)
	for _, r := range l.records {
		if r.operation.Name() == name {
			out = append(out, r)
		}
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.records)
}
