package console

import "strings"

// ParseResult is one console line split into its command word and arguments.
type ParseResult struct {
	// Command is the first word, lowercased.
	Command string
	// Args are the remaining words.
	Args []string
	// RawArgs is everything after the command word with the outer spacing
	// trimmed, for free-text arguments such as search queries.
	RawArgs string
}

// Parse splits line at whitespace. Spaces and tabs both separate words.
//
// Postcondition: Command is empty for a blank line; Args is nil when the
// line holds only the command word.
func Parse(line string) ParseResult {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ParseResult{}
	}
	p := ParseResult{Command: strings.ToLower(words[0])}
	if len(words) == 1 {
		return p
	}
	p.Args = words[1:]
	_, p.RawArgs, _ = strings.Cut(strings.TrimSpace(line), words[0])
	p.RawArgs = strings.TrimSpace(p.RawArgs)
	return p
}

// RoomRef splits Args into a room reference followed by exactly n trailing
// arguments. Room names may contain spaces, so "set Main Lab chairs usable 4"
// yields ("Main Lab", [chairs usable 4]).
//
// Postcondition: ok is false when fewer than n+1 args are given.
func (p ParseResult) RoomRef(n int) (ref string, rest []string, ok bool) {
	cut := len(p.Args) - n
	if cut < 1 {
		return "", nil, false
	}
	return strings.Join(p.Args[:cut], " "), p.Args[cut:], true
}
