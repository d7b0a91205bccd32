package core

// Kind classifies the result of one persistence call.
type Kind int

const (
	KindSuccess Kind = iota
	KindCreated
	KindNotFound
	KindInternalError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindCreated:
		return "created"
	case KindNotFound:
		return "not_found"
	case KindInternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}

// Outcome is the normalized result of a single operation.
// Items is only set by a successful List and is never nil in that case.
type Outcome struct {
	Kind    Kind
	Message string
	Items   []Item
}

// Success returns an ordinary-success outcome.
func Success(msg string) Outcome { return Outcome{Kind: KindSuccess, Message: msg} }

// Created returns a creation-success outcome.
func Created(msg string) Outcome { return Outcome{Kind: KindCreated, Message: msg} }

// NotFound returns a zero-match outcome.
func NotFound(msg string) Outcome { return Outcome{Kind: KindNotFound, Message: msg} }

// InternalError returns a failed-call outcome.
func InternalError(msg string) Outcome { return Outcome{Kind: KindInternalError, Message: msg} }

// Listed returns the success outcome of List carrying items.
func Listed(items []Item) Outcome {
	if items == nil {
		items = []Item{}
	}
	return Outcome{Kind: KindSuccess, Message: "Items retrieved successfully", Items: items}
}

// OK reports whether the outcome is a success of either kind.
func (o Outcome) OK() bool {
	return o.Kind == KindSuccess || o.Kind == KindCreated
}
