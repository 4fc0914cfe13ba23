// Package commands implements the user-editable custom command registry:
// trigger phrases mapped to fixed responses, checked before built-in intents.
package commands

import (
	"fmt"
	"strings"
)

// Registry maps trigger phrases to canned responses. Triggers are stored
// lower-cased so matching is case-insensitive; lookup scans triggers in
// registration order and matches by substring containment, so the earliest
// registered trigger found inside the command wins. Only the dispatcher's
// turn loop mutates the registry; no internal locking.
type Registry struct {
	order     []string
	responses map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{responses: make(map[string]string)}
}

// Register stores or overwrites a trigger/response pair and returns a
// confirmation descriptor. Re-registering a trigger keeps its original
// position (last write wins on the response).
func (r *Registry) Register(trigger, response string) string {
	key := strings.ToLower(strings.TrimSpace(trigger))
	if _, exists := r.responses[key]; !exists {
		r.order = append(r.order, key)
	}
	r.responses[key] = response
	return fmt.Sprintf("Custom command added: %q will now respond with %q", trigger, response)
}

// Match scans registered triggers in registration order and returns the
// response of the first trigger contained in the command. Substring
// containment is deliberate: "tell me a joke" matches "please tell me a joke
// now". The second return is false when no trigger matches.
func (r *Registry) Match(command string) (string, bool) {
	lower := strings.ToLower(command)
	for _, trigger := range r.order {
		if strings.Contains(lower, trigger) {
			return r.responses[trigger], true
		}
	}
	return "", false
}

// Response returns the exact response stored for a trigger, without the
// substring matching Match applies.
func (r *Registry) Response(trigger string) (string, bool) {
	response, ok := r.responses[strings.ToLower(strings.TrimSpace(trigger))]
	return response, ok
}

// Triggers returns the trigger phrases in registration order.
func (r *Registry) Triggers() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports the number of registered triggers.
func (r *Registry) Len() int {
	return len(r.order)
}
