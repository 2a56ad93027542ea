package oauth

import "sync"

// CodeLedger holds issued authorization codes awaiting exchange.
//
// Codes are single-use: Consume removes the entry, so a second exchange with
// the same code fails. The ledger is in-memory only - codes are short-lived
// by nature and do not survive a restart, which at worst forces the linking
// flow to be repeated.
//
// All methods are safe for concurrent use.
type CodeLedger struct {
	mu    sync.Mutex
	codes map[string]AuthorizationCode
}

// NewCodeLedger creates an empty authorization code ledger.
func NewCodeLedger() *CodeLedger {
	return &CodeLedger{
		codes: make(map[string]AuthorizationCode),
	}
}

// Put records an issued authorization code.
func (l *CodeLedger) Put(code AuthorizationCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.codes[code.Code] = code
}

// Consume removes and returns the entry for a code.
//
// Returns:
//   - AuthorizationCode: The stored binding, zero value if absent
//   - bool: false if the code was never issued or already consumed
func (l *CodeLedger) Consume(code string) (AuthorizationCode, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stored, ok := l.codes[code]
	if ok {
		delete(l.codes, code)
	}
	return stored, ok
}

// Len returns the number of outstanding codes.
func (l *CodeLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.codes)
}
