package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// CaptureEvent captures a pipeline event for post-mortem analysis
type CaptureEvent struct {
	EventType uint8  // Event type code
	Clock     uint32 // System clock at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtTrigger       = 1 // frame-start edge handled (v1 = capture state before)
	EvtFramePublish  = 2 // frame handed to drain (v1 = published count)
	EvtFrameDrop     = 3 // frame dropped, drain busy (v1 = dropped count)
	EvtFrameSent     = 4 // frame transmitted (v1 = bytes, v2 = coalesced notifications)
	EvtTransmitError = 5 // host link write failed (v1 = bytes written)
	EvtRestart       = 6 // reconfigure and restart (v1 = sequencer divider int, v2 = sampler divider int)
	EvtCommand       = 7 // command executed (v1 = opcode, v2 = operand)
	EvtCommandDrop   = 8 // command dropped on timeout (v1 = opcode, v2 = bytes read)
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active.
	// Disabled by default: the host link carries frames.
	debugEnabled bool = false

	// Event capture ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]CaptureEvent
	eventRingHead uint8
	eventsEnabled bool = true

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync for non-blocking)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if !debugEnabled || debugChan == nil {
		return
	}
	select {
	case debugChan <- msg:
	default:
		// Channel full, drop message (non-blocking)
	}
}

// RecordEvent captures an event in the ring buffer.
// Safe from the edge handler: no allocation, interrupts masked for the write.
func RecordEvent(eventType uint8, value1, value2 uint32) {
	if !eventsEnabled {
		return
	}
	state := disableInterrupts()
	idx := eventRingHead
	eventRing[idx] = CaptureEvent{
		EventType: eventType,
		Clock:     GetTime(),
		Value1:    value1,
		Value2:    value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
	restoreInterrupts(state)
}

// Events returns the recorded events, oldest first
func Events() []CaptureEvent {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	out := make([]CaptureEvent, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType != 0 {
			out = append(out, evt)
		}
	}
	return out
}

// DumpEventRing outputs the event ring buffer
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + eventName(evt.EventType) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	state := disableInterrupts()
	for i := range eventRing {
		eventRing[i] = CaptureEvent{}
	}
	eventRingHead = 0
	restoreInterrupts(state)
}

func eventName(eventType uint8) string {
	switch eventType {
	case EvtTrigger:
		return "TRIGGER"
	case EvtFramePublish:
		return "PUBLISH"
	case EvtFrameDrop:
		return "DROP!"
	case EvtFrameSent:
		return "SENT"
	case EvtTransmitError:
		return "TX_ERROR!"
	case EvtRestart:
		return "RESTART"
	case EvtCommand:
		return "COMMAND"
	case EvtCommandDrop:
		return "CMD_DROP"
	}
	return "UNKNOWN"
}
