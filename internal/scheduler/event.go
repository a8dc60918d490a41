package scheduler

// EventType identifies a kind of event. Only one event of each
// type can be scheduled at a time.
type EventType uint8

const (
	// DMAStart begins an OAM DMA transfer once the start-up
	// delay following a write to types.DMA has elapsed.
	DMAStart EventType = iota
	// DMAEnd finishes an OAM DMA transfer.
	DMAEnd
	// SerialBitTransfer shifts a single bit through the serial port
	// when it is driven by the internal clock.
	SerialBitTransfer

	// eventTypes is the number of event types used by the core.
	// Collaborators may register types from here up to 255.
	eventTypes
)

// UserEvent is the first EventType free for use by collaborators,
// such as a video or audio unit.
const UserEvent = eventTypes

// Event is an entry in the scheduler's event list.
type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}
