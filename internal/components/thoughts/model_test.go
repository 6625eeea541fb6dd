package thoughts

import (
	"testing"

	"pricepulse/internal/sse"
)

func TestAppendCoalescesFragments(t *testing.T) {
	m := New(80, 24)
	m.SetAgents([]string{"scout", "analyst", "strategist"})

	m.Append("scout", sse.ThoughtObservation, "Extracting ", false)
	m.Append("scout", sse.ThoughtObservation, "competitor prices.", false)

	entries := m.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if got := entries[0].Content; got != "Extracting competitor prices." {
		t.Errorf("content = %q", got)
	}
}

func TestAppendStartsNewEntryOnAgentChange(t *testing.T) {
	m := New(80, 24)

	m.Append("scout", sse.ThoughtObservation, "done here", true)
	m.Append("analyst", sse.ThoughtAnalysis, "taking over", false)

	entries := m.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Agent != "scout" || entries[1].Agent != "analyst" {
		t.Errorf("agents = %q, %q", entries[0].Agent, entries[1].Agent)
	}
}

func TestAppendDoesNotExtendFinalEntry(t *testing.T) {
	m := New(80, 24)

	m.Append("scout", sse.ThoughtObservation, "first thought", true)
	m.Append("scout", sse.ThoughtObservation, "second thought", false)

	entries := m.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if !entries[0].IsFinal {
		t.Error("first entry lost its final flag")
	}
}

func TestClearResetsLog(t *testing.T) {
	m := New(80, 24)
	m.Append("scout", sse.ThoughtObservation, "something", false)
	m.SetResult("## Result")

	m.Clear()
	if !m.IsEmpty() {
		t.Error("log not empty after Clear")
	}
}
