package dispatch

import (
	"vera/internal/nlu"
	"vera/internal/session"
)

// Action is the dispatcher's verdict for one input turn: what to say and
// whether the interaction loop should continue. Continue is false only for
// explicit exit commands.
type Action struct {
	Response string
	Intent   nlu.Intent
	Entities nlu.Entities
	Signal   session.Signal
	Continue bool
}

func respond(text string, intent nlu.Intent) Action {
	return Action{Response: text, Intent: intent, Continue: true}
}
