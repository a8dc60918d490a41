// Package scheduler provides the clock of the emulator. Every call
// to StepCycle advances the machine by exactly one machine cycle,
// running the events due on that cycle, ticking every attached
// peripheral and finally the processor.
package scheduler

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// Processor is the unit ticked last on every machine cycle, after
// all the peripherals have observed the cycle.
type Processor interface {
	Tick() error
}

// FaultSource is implemented by peripherals that may encounter a
// fatal condition during a cycle, such as the memory bus failing
// to resolve an address.
type FaultSource interface {
	Err() error
}

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is stepped, every
// event scheduled for the new cycle is executed and removed from the list.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [256]func() // set to 256 (uint8 max) avoids bounds check on eventHandlers[eventType]()
	events        [256]Event  // only one event of each type can be scheduled at a time

	peripherals []types.Peripheral
	faults      []FaultSource
	processor   Processor

	err error
}

// NewScheduler returns a new Scheduler at cycle 0.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	for i := range s.events {
		s.events[i].eventType = EventType(i)
	}
	return s
}

// Cycle returns the number of machine cycles that have been stepped.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// AttachProcessor sets the processor ticked at the end of every cycle.
func (s *Scheduler) AttachProcessor(p Processor) {
	s.processor = p
}

// AttachPeripheral adds p to the list of peripherals. Peripherals are
// ticked in the order they were attached. If p implements FaultSource
// it is checked for errors at the end of every cycle.
func (s *Scheduler) AttachPeripheral(p types.Peripheral) {
	s.peripherals = append(s.peripherals, p)
	if f, ok := p.(FaultSource); ok {
		s.AttachFaultSource(f)
	}
}

// AttachFaultSource adds f to the sources checked for a fatal error at
// the end of every cycle.
func (s *Scheduler) AttachFaultSource(f FaultSource) {
	s.faults = append(s.faults, f)
}

// RegisterEvent registers a function of the EventType to be called when
// the event is scheduled for execution. This is to avoid the cost of
// having to allocate a function for each event, which would frequently
// invoke the garbage collector, despite the functions always performing
// the same task.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// ScheduleEvent schedules an event to be executed in the given number of
// cycles. An event scheduled 1 cycle ahead runs at the start of the next
// cycle. Scheduling an event that is already scheduled moves it.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycles uint64) {
	this := &s.events[eventType]
	if this.scheduled {
		s.DescheduleEvent(eventType)
	}
	this.cycle = s.cycles + cycles
	this.scheduled = true
	this.next = nil

	// events due on the same cycle run in the order they were scheduled
	if s.root == nil || this.cycle < s.root.cycle {
		this.next = s.root
		s.root = this
		return
	}
	prev := s.root
	for prev.next != nil && prev.next.cycle <= this.cycle {
		prev = prev.next
	}
	this.next = prev.next
	prev.next = this
}

// DescheduleEvent removes the event from the list, if it is scheduled.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	var prev *Event
	for event := s.root; event != nil; event = event.next {
		if event.eventType == eventType {
			if prev == nil {
				s.root = event.next
			} else {
				prev.next = event.next
			}
			event.next = nil
			event.scheduled = false
			return
		}
		prev = event
	}
}

// Until returns the number of cycles until the event is due, and false
// if the event is not scheduled.
func (s *Scheduler) Until(eventType EventType) (uint64, bool) {
	e := &s.events[eventType]
	if !e.scheduled {
		return 0, false
	}
	return e.cycle - s.cycles, true
}

// StepCycle advances the machine by one machine cycle. Once a fatal error
// has been returned, every later call returns the same error without
// advancing.
func (s *Scheduler) StepCycle() error {
	if s.err != nil {
		return s.err
	}
	s.cycles++

	// execute all events due on this cycle
	for s.root != nil && s.root.cycle <= s.cycles {
		event := s.root
		s.root = event.next
		event.next = nil
		event.scheduled = false
		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}

	for _, p := range s.peripherals {
		p.Tick()
	}

	if s.processor != nil {
		if err := s.processor.Tick(); err != nil {
			s.err = fmt.Errorf("scheduler: cycle %d: %w", s.cycles, err)
			return s.err
		}
	}

	for _, f := range s.faults {
		if err := f.Err(); err != nil {
			s.err = fmt.Errorf("scheduler: cycle %d: %w", s.cycles, err)
			return s.err
		}
	}
	return nil
}

// RunUntil steps the machine until cond returns true, returning the
// number of cycles stepped. cond is checked before every cycle.
func (s *Scheduler) RunUntil(cond func() bool) (uint64, error) {
	var n uint64
	for !cond() {
		if err := s.StepCycle(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// RunFor steps the machine for the given number of cycles.
func (s *Scheduler) RunFor(cycles uint64) error {
	for i := uint64(0); i < cycles; i++ {
		if err := s.StepCycle(); err != nil {
			return err
		}
	}
	return nil
}

// Err returns the fatal error that stopped the machine, if any.
func (s *Scheduler) Err() error {
	return s.err
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%d:%d->", event.eventType, event.cycle)
	}
	return b.String()
}
