package reminder

import (
	"regexp"
	"strconv"
	"strings"
)

// The two accepted grammars, tried in order:
//
//	(a) "remind me to <message> in <N> minute[s]"
//	(b) "remind me in <N> minute[s] to <message>"
var (
	messageFirstPattern = regexp.MustCompile(`(?i)remind me to (.+) in (\d+) minute`)
	delayFirstPattern   = regexp.MustCompile(`(?i)remind me in (\d+) minutes? to (.+)`)
)

// Parse extracts the reminder message and delay in minutes from a command.
// ok is false when neither grammar matches, the message is empty, or N is
// not a positive integer.
func Parse(command string) (message string, minutes int, ok bool) {
	if m := messageFirstPattern.FindStringSubmatch(command); m != nil {
		return validate(m[1], m[2])
	}
	if m := delayFirstPattern.FindStringSubmatch(command); m != nil {
		return validate(m[2], m[1])
	}
	return "", 0, false
}

func validate(rawMessage, rawMinutes string) (string, int, bool) {
	message := strings.TrimSpace(rawMessage)
	if message == "" {
		return "", 0, false
	}
	minutes, err := strconv.Atoi(rawMinutes)
	if err != nil || minutes <= 0 {
		return "", 0, false
	}
	return message, minutes, true
}
