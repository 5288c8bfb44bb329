package matchi

// EventKind is the recognized set of booking-lifecycle events. Webhook
// dispatch matches on this tagged variant rather than raw detail-type
// strings.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventBookingCreated
	EventBookingMoved
	EventBookingCancelled
)

// detailTypes maps platform detail-type strings (both the legacy and
// V1 names) to event kinds.
var detailTypes = map[string]EventKind{
	"BookingCreated":     EventBookingCreated,
	"BookingCreatedV1":   EventBookingCreated,
	"BookingMoved":       EventBookingMoved,
	"BookingMovedV1":     EventBookingMoved,
	"BookingCancelled":   EventBookingCancelled,
	"BookingCancelledV1": EventBookingCancelled,
}

// ParseEventKind resolves a detail-type string to its event kind,
// returning EventUnknown for unrecognized types.
func ParseEventKind(detailType string) EventKind {
	if kind, ok := detailTypes[detailType]; ok {
		return kind
	}
	return EventUnknown
}

// String returns a readable name for logging.
func (k EventKind) String() string {
	switch k {
	case EventBookingCreated:
		return "booking_created"
	case EventBookingMoved:
		return "booking_moved"
	case EventBookingCancelled:
		return "booking_cancelled"
	default:
		return "unknown"
	}
}
