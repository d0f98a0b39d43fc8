package combat

import "container/heap"

// SimulationEvent is the single-method contract every scheduled event
// implements (spec §3, "SimulationEvent ... implements a single
// execute(ctx) -> {ends_round?, schedule_more?} contract"; spec §9,
// "Prefer a tagged sum type with an execute(&mut Context) -> StepResult
// method"). TimeMs/OpID/Seq give the EventQueue its ordering key without
// requiring the queue to know each variant's internal shape.
type SimulationEvent interface {
	TimeMs() uint64
	OpID() OperatorID
	Seq() uint64
	Kind() EventKind
	Execute(cx *ExecContext) StepResult
}

// StepResult is what Execute hands back to the kernel's drain loop.
type StepResult struct {
	EndsRound bool
}

// eventBase is embedded by every concrete event type to supply the
// ordering key fields (spec §3: "Each carries event_time_ms, operator_id,
// sequence_number").
type eventBase struct {
	timeMs     uint64
	operatorID OperatorID
	sequence   uint64
}

func (b eventBase) TimeMs() uint64       { return b.timeMs }
func (b eventBase) OpID() OperatorID     { return b.operatorID }
func (b eventBase) Seq() uint64          { return b.sequence }

// EventKind discriminates the SimulationEvent variants of spec §3.
type EventKind uint8

const (
	KindShotFired EventKind = iota
	KindDamageApplied
	KindShotMissed
	KindReloadComplete
	KindADSTransitionUpdate
	KindMovementInterval
	KindSlideComplete
	KindCoverTransitionStarted
	KindCoverTransitionCompleted
	KindSuppressionStarted
	KindSuppressionUpdated
	KindSuppressionEnded
	KindSuppressiveFireStarted
	KindSuppressiveFireCompleted
	KindTargetRecognized
	KindMicroReaction
)

func (k EventKind) String() string {
	switch k {
	case KindShotFired:
		return "ShotFired"
	case KindDamageApplied:
		return "DamageApplied"
	case KindShotMissed:
		return "ShotMissed"
	case KindReloadComplete:
		return "ReloadComplete"
	case KindADSTransitionUpdate:
		return "ADSTransitionUpdate"
	case KindMovementInterval:
		return "MovementInterval"
	case KindSlideComplete:
		return "SlideComplete"
	case KindCoverTransitionStarted:
		return "CoverTransitionStarted"
	case KindCoverTransitionCompleted:
		return "CoverTransitionCompleted"
	case KindSuppressionStarted:
		return "SuppressionStarted"
	case KindSuppressionUpdated:
		return "SuppressionUpdated"
	case KindSuppressionEnded:
		return "SuppressionEnded"
	case KindSuppressiveFireStarted:
		return "SuppressiveFireStarted"
	case KindSuppressiveFireCompleted:
		return "SuppressiveFireCompleted"
	case KindTargetRecognized:
		return "TargetRecognized"
	case KindMicroReaction:
		return "MicroReaction"
	default:
		return "Unknown"
	}
}

// isInFlightKind reports whether k is one of the only event kinds
// ClearExceptInFlightBullets retains
// (spec §4.1, §4.2: "Clears all queued events except in-flight bullets").
func isInFlightKind(k EventKind) bool {
	return k == KindDamageApplied || k == KindShotMissed
}

// eventHeap implements container/heap.Interface ordering by
// (event_time_ms, operator_id, sequence_number) ascending (spec §4.1).
// No third-party priority-queue package appears anywhere in the retrieved
// pack, so container/heap — the standard library's own, audited
// implementation of exactly this data structure — is used directly
// (see DESIGN.md).
type eventHeap []SimulationEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.TimeMs() != b.TimeMs() {
		return a.TimeMs() < b.TimeMs()
	}
	if a.OpID() != b.OpID() {
		return a.OpID() < b.OpID()
	}
	return a.Seq() < b.Seq()
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(SimulationEvent))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// EventQueue is the combat kernel's priority-ordered dispatch queue
// (spec §3, "EventQueue").
type EventQueue struct {
	heap eventHeap
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.heap)
	return q
}

// Schedule inserts an event.
func (q *EventQueue) Schedule(e SimulationEvent) {
	heap.Push(&q.heap, e)
}

// Peek returns the next event to dequeue without removing it.
func (q *EventQueue) Peek() (SimulationEvent, bool) {
	if len(q.heap) == 0 {
		return nil, false
	}
	return q.heap[0], true
}

// Dequeue removes and returns the next event in order.
func (q *EventQueue) Dequeue() (SimulationEvent, bool) {
	if len(q.heap) == 0 {
		return nil, false
	}
	e := heap.Pop(&q.heap).(SimulationEvent)
	return e, true
}

// Len reports how many events are pending.
func (q *EventQueue) Len() int { return len(q.heap) }

// RemoveAllForOperator drops every pending event whose OpID is id.
func (q *EventQueue) RemoveAllForOperator(id OperatorID) {
	kept := q.heap[:0]
	for _, e := range q.heap {
		if e.OpID() != id {
			kept = append(kept, e)
		}
	}
	q.heap = kept
	heap.Init(&q.heap)
}

// RemoveAllForOperatorExceptInFlight drops pending, not-yet-resolved
// events for id while preserving any in-flight bullet already committed
// to land (spec §5, "cancelling intents never un-fires a bullet already
// in flight").
func (q *EventQueue) RemoveAllForOperatorExceptInFlight(id OperatorID) {
	kept := q.heap[:0]
	for _, e := range q.heap {
		if e.OpID() != id || isInFlightKind(e.Kind()) {
			kept = append(kept, e)
		}
	}
	q.heap = kept
	heap.Init(&q.heap)
}

// ClearExceptInFlightBullets drops every pending event except
// DamageApplied and ShotMissed (spec §4.1, §4.2, §5 "An in-flight bullet
// scheduled at time T always resolves at T, even if a new planning phase
// intervenes").
func (q *EventQueue) ClearExceptInFlightBullets() {
	kept := q.heap[:0]
	for _, e := range q.heap {
		if isInFlightKind(e.Kind()) {
			kept = append(kept, e)
		}
	}
	q.heap = kept
	heap.Init(&q.heap)
}
