package alerting

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError rejects an input with every offending field listed, not just
// the first one found.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// InvalidEntityError signals a computation that needs a field the entity does
// not carry, such as classifying expiry without an expiry date.
type InvalidEntityError struct {
	Entity string
	Field  string
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("%s is missing required field %s", e.Entity, e.Field)
}

// InvalidStateTransitionError rejects an operation not allowed from the
// entity's current state, such as retrying a notification that is not FAILED.
type InvalidStateTransitionError struct {
	Current string
	Action  string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from status %s", e.Action, e.Current)
}

// DispatchError wraps a notifier failure with the channel it happened on.
// Expected at runtime: the caller records it and moves on to the next entity.
type DispatchError struct {
	Channel string
	Cause   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch via %s failed: %v", e.Channel, e.Cause)
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}
