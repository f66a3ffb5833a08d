package domain

import (
	"fmt"
	"strings"
	"time"
)

// BuildReference produces a human-readable ticket code from the receipt time
// and the requester's name: DDMMYYYYHHMM in UTC followed by up to three
// uppercase initials, e.g. "011020250804JDC". Codes are not guaranteed
// unique; two same-initialed requesters received in the same minute collide.
func BuildReference(receivedAt time.Time, name string) string {
	t := receivedAt.UTC()
	stamp := fmt.Sprintf("%02d%02d%04d%02d%02d", t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute())
	return stamp + Initials(name)
}

// Initials derives up to three initials from a full name: given name, first
// middle token when the name has three or more tokens, and last name. A
// single-token name yields one initial; an empty name yields "X".
func Initials(name string) string {
	tokens := strings.Fields(strings.TrimSpace(name))
	if len(tokens) == 0 {
		return "X"
	}
	if len(tokens) == 1 {
		return strings.ToUpper(firstRune(tokens[0]))
	}
	first := firstRune(tokens[0])
	last := firstRune(tokens[len(tokens)-1])
	middle := ""
	if len(tokens) >= 3 {
		middle = firstRune(tokens[1])
	}
	return strings.ToUpper(first + middle + last)
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
