package utils

import "testing"

func TestHashPayload(t *testing.T) {
	a, err := HashPayload(map[string]int{"quantity": 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, _ := HashPayload(map[string]int{"quantity": 1})
	c, _ := HashPayload(map[string]int{"quantity": 2})

	if a != b {
		t.Fatal("expected equal payloads to hash equally")
	}
	if a == c {
		t.Fatal("expected different payloads to hash differently")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}

	if _, err := HashPayload(make(chan int)); err == nil {
		t.Fatal("expected error for unencodable payload")
	}
}
