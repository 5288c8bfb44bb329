package message

import "github.com/sweden-indoor-golf/service-baydisplay/internal/domain/booking"

// Type identifies which user-facing message a rule produces. The empty
// value means the rule matched but its message is suppressed.
type Type string

const (
	TypeStart       Type = "start"
	TypeEndFree     Type = "end-free"
	TypeEndOccupied Type = "end-occupied"
)

// Rule names, used for diagnostics and to select which flag the
// orchestrator persists after a match.
const (
	RuleWelcome             = "welcome"
	RuleWelcomeContinuation = "welcome-continuation"
	RuleEarlyWelcome        = "early-welcome"
	RuleEndingFree          = "ending-free"
	RuleEndingOccupied      = "ending-occupied"
	RuleEndingContinuation  = "ending-continuation"
)

// Result is the outcome of one rule evaluation. Booking is the booking
// whose flag must be updated; Type is empty for suppressed messages.
type Result struct {
	RuleName string
	Type     Type
	Booking  *booking.Booking
}

type rule struct {
	name    string
	matches func(Context) bool
	outcome func(Context) *Result
}

// rules is evaluated top to bottom; the first match wins. The order is
// deliberate: later rules assume earlier ones did not match. Within
// each priority group (welcome vs welcome-continuation, and the three
// ending rules) the predicates partition their precondition space, so
// only one can ever match a given context.
var rules = []rule{
	{
		name: RuleWelcome,
		matches: func(ctx Context) bool {
			return ctx.Current != nil &&
				!ctx.Current.HasShownStartMessage() &&
				!ctx.SameCustomerAsPrevious
		},
		outcome: func(ctx Context) *Result {
			return &Result{RuleName: RuleWelcome, Type: TypeStart, Booking: ctx.Current}
		},
	},
	{
		name: RuleWelcomeContinuation,
		matches: func(ctx Context) bool {
			return ctx.Current != nil &&
				!ctx.Current.HasShownStartMessage() &&
				ctx.SameCustomerAsPrevious
		},
		outcome: func(ctx Context) *Result {
			// Suppressed: the customer is already at the bay, but the
			// flag must still be marked shown.
			return &Result{RuleName: RuleWelcomeContinuation, Booking: ctx.Current}
		},
	},
	{
		name: RuleEarlyWelcome,
		matches: func(ctx Context) bool {
			return ctx.Current == nil &&
				ctx.Next != nil &&
				!ctx.Next.HasShownStartMessage() &&
				ctx.IsAboutToStart
		},
		outcome: func(ctx Context) *Result {
			return &Result{RuleName: RuleEarlyWelcome, Type: TypeStart, Booking: ctx.Next}
		},
	},
	{
		name: RuleEndingFree,
		matches: func(ctx Context) bool {
			return endingPreconditions(ctx) && !ctx.NextIsConsecutive
		},
		outcome: func(ctx Context) *Result {
			return &Result{RuleName: RuleEndingFree, Type: TypeEndFree, Booking: ctx.Current}
		},
	},
	{
		name: RuleEndingOccupied,
		matches: func(ctx Context) bool {
			return endingPreconditions(ctx) && ctx.NextIsConsecutive && !ctx.SameCustomerAsNext
		},
		outcome: func(ctx Context) *Result {
			return &Result{RuleName: RuleEndingOccupied, Type: TypeEndOccupied, Booking: ctx.Current}
		},
	},
	{
		name: RuleEndingContinuation,
		matches: func(ctx Context) bool {
			return endingPreconditions(ctx) && ctx.NextIsConsecutive && ctx.SameCustomerAsNext
		},
		outcome: func(ctx Context) *Result {
			return &Result{RuleName: RuleEndingContinuation, Booking: ctx.Current}
		},
	},
}

func endingPreconditions(ctx Context) bool {
	return ctx.Current != nil &&
		ctx.Current.HasShownStartMessage() &&
		!ctx.Current.HasShownEndMessage() &&
		ctx.IsNearEnd
}

// EvaluateRules returns the outcome of the first matching rule, or nil
// when no rule matches (no message, no flag change).
func EvaluateRules(ctx Context) *Result {
	for _, r := range rules {
		if r.matches(ctx) {
			return r.outcome(ctx)
		}
	}
	return nil
}
