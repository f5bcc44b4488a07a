package audit

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func tempDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return db
}

func TestLogProjectionAndList(t *testing.T) {
	db := tempDB(t)

	entries := []Entry{
		{AgentID: "agent-a", Strategy: "balanced", Iterations: 2, Converged: true, ViolationsBefore: 3},
		{AgentID: "agent-b", Strategy: "raise_dependencies", Iterations: 100, Converged: false, ViolationsBefore: 5, ViolationsAfter: 1, Reason: "budget exhausted"},
	}
	for _, e := range entries {
		if err := LogProjection(db, e); err != nil {
			t.Fatalf("LogProjection: %v", err)
		}
	}

	got, err := List(db, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}

	// Newest first.
	if got[0].AgentID != "agent-b" || got[1].AgentID != "agent-a" {
		t.Fatalf("unexpected order: %v, %v", got[0].AgentID, got[1].AgentID)
	}
	if got[0].Converged || !got[1].Converged {
		t.Fatal("converged flags lost in round trip")
	}
	if got[0].Reason != "budget exhausted" {
		t.Fatalf("reason lost: %q", got[0].Reason)
	}
	if got[1].Reason != "" {
		t.Fatalf("expected empty reason, got %q", got[1].Reason)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at filled in")
	}
}

func TestListLimit(t *testing.T) {
	db := tempDB(t)
	for i := 0; i < 5; i++ {
		if err := LogProjection(db, Entry{AgentID: "agent-a", Strategy: "balanced"}); err != nil {
			t.Fatalf("LogProjection: %v", err)
		}
	}
	got, err := List(db, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
}
