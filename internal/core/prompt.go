package core

import "strings"

const smsMarker = "SMS:"

// UnwrapPrompt recovers the raw message from a wrapped instruction such as
// `Classify this SMS: "Your account has been debited..."`. Quotes after the
// marker delimit the message when present, otherwise everything after the
// marker counts. Text without the marker passes through unchanged.
func UnwrapPrompt(prompt string) string {
	idx := strings.Index(prompt, smsMarker)
	if idx == -1 {
		return prompt
	}
	rest := prompt[idx+len(smsMarker):]
	if open := strings.Index(rest, `"`); open != -1 {
		rest = rest[open+1:]
		if end := strings.Index(rest, `"`); end != -1 {
			rest = rest[:end]
		}
	}
	return strings.TrimSpace(rest)
}
