package deck

import (
	"strconv"
	"strings"
)

// Entry is one decklist line: quantity copies of a named card.
type Entry struct {
	Quantity int
	Name     string
}

// ParseDecklist parses the plain decklist format: one "<qty> <name>" per
// line. Blank lines and a literal "Deck" header are ignored. Lines that do
// not parse (missing quantity, non-positive quantity, empty name) are
// dropped silently rather than reported.
func ParseDecklist(text string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "Deck" {
			continue
		}
		qtyStr, name, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		entries = append(entries, Entry{Quantity: qty, Name: name})
	}
	return entries
}
