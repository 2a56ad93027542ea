package oauth

import (
	"sync"
	"testing"
)

func TestCodeLedger_ConsumeOnce(t *testing.T) {
	ledger := NewCodeLedger()
	ledger.Put(AuthorizationCode{
		Code:        "abc123",
		ClientID:    "google-home",
		RedirectURI: "https://oauth-redirect.googleusercontent.com/r/project",
	})

	stored, ok := ledger.Consume("abc123")
	if !ok {
		t.Fatal("first Consume() = false, want true")
	}
	if stored.ClientID != "google-home" {
		t.Errorf("ClientID = %q, want google-home", stored.ClientID)
	}

	// Second consumption must fail - codes are single-use
	if _, ok := ledger.Consume("abc123"); ok {
		t.Error("second Consume() = true, want false")
	}
}

func TestCodeLedger_ConsumeUnknown(t *testing.T) {
	ledger := NewCodeLedger()

	if _, ok := ledger.Consume("never-issued"); ok {
		t.Error("Consume(never-issued) = true, want false")
	}
}

func TestCodeLedger_Len(t *testing.T) {
	ledger := NewCodeLedger()
	ledger.Put(AuthorizationCode{Code: "a"})
	ledger.Put(AuthorizationCode{Code: "b"})

	if got := ledger.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	ledger.Consume("a")
	if got := ledger.Len(); got != 1 {
		t.Errorf("Len() after consume = %d, want 1", got)
	}
}

// TestCodeLedger_ConcurrentConsume verifies that exactly one of many
// concurrent consumers wins a code.
func TestCodeLedger_ConcurrentConsume(t *testing.T) {
	ledger := NewCodeLedger()
	ledger.Put(AuthorizationCode{Code: "contested"})

	const goroutines = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := ledger.Consume("contested"); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("expected exactly 1 winning consume, got %d", wins)
	}
}
