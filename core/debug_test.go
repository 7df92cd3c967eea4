package core

import (
	"strings"
	"testing"
)

func TestEventRingOrder(t *testing.T) {
	ClearEventRing()
	RecordEvent(EvtTrigger, 1, 0)
	RecordEvent(EvtFramePublish, 2, 0)
	RecordEvent(EvtFrameSent, 3, 0)

	events := Events()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for i, evt := range events {
		if evt.Value1 != uint32(i+1) {
			t.Errorf("Event %d out of order: %+v", i, evt)
		}
	}
}

func TestEventRingWraps(t *testing.T) {
	ClearEventRing()
	for i := 0; i < EventRingSize+8; i++ {
		RecordEvent(EvtCommand, uint32(i), 0)
	}

	events := Events()
	if len(events) != EventRingSize {
		t.Fatalf("Expected %d events, got %d", EventRingSize, len(events))
	}
	if events[0].Value1 != 8 || events[len(events)-1].Value1 != EventRingSize+7 {
		t.Errorf("Expected events 8..%d, got %d..%d", EventRingSize+7, events[0].Value1, events[len(events)-1].Value1)
	}
}

func TestDumpEventRing(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	ClearEventRing()
	SetTime(1234)
	RecordEvent(EvtFrameDrop, 7, 0)
	DumpEventRing()

	if len(lines) != 3 {
		t.Fatalf("Expected 3 dump lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[1], "DROP!") || !strings.Contains(lines[1], "clock=1234") || !strings.Contains(lines[1], "v1=7") {
		t.Errorf("Unexpected dump line %q", lines[1])
	}
}

func TestDebugDisabledByDefault(t *testing.T) {
	called := false
	SetDebugWriter(func(string) { called = true })
	defer SetDebugWriter(func(string) {})

	DebugPrintln("hidden")
	DebugAsync("hidden")
	if called {
		t.Error("Debug output written while disabled")
	}
}
