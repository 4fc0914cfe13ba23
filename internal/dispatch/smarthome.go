package dispatch

import (
	"fmt"
	"strings"

	"vera/internal/nlu"
)

// smartHomeResponse does keyword sub-dispatch for device control commands.
// Temperature commands take their value from the extractor's number category.
func (d *Dispatcher) smartHomeResponse(input string, ents nlu.Entities) string {
	lower := strings.ToLower(input)

	switch {
	case strings.Contains(lower, "turn on"):
		if strings.Contains(lower, "light") {
			return "Turning on the lights"
		}
		if strings.Contains(lower, "alarm") {
			return "Activating security alarm"
		}
	case strings.Contains(lower, "turn off"):
		if strings.Contains(lower, "light") {
			return "Turning off the lights"
		}
		if strings.Contains(lower, "alarm") {
			return "Deactivating security alarm"
		}
	case strings.Contains(lower, "set") && strings.Contains(lower, "temperature"):
		if len(ents.Numbers) > 0 {
			return fmt.Sprintf("Setting temperature to %s degrees", ents.Numbers[0])
		}
		return "What temperature should I set?"
	}
	return "Smart home command not recognized"
}
