package card

import "strings"

// Type is one of the nine card type categories tracked by the simulator.
type Type string

const (
	Artifact     Type = "Artifact"
	Battle       Type = "Battle"
	Creature     Type = "Creature"
	Enchantment  Type = "Enchantment"
	Instant      Type = "Instant"
	Kindred      Type = "Kindred"
	Land         Type = "Land"
	Planeswalker Type = "Planeswalker"
	Sorcery      Type = "Sorcery"
)

// Universe lists every tracked type in its fixed enumeration order.
// The coverage selector depends on this order being stable.
var Universe = [...]Type{
	Artifact, Battle, Creature, Enchantment, Instant,
	Kindred, Land, Planeswalker, Sorcery,
}

// NumTypes is the size of the type universe.
const NumTypes = len(Universe)

// TypeSet is a bitmask over Universe. The zero value is the empty set.
type TypeSet uint16

// bit returns the mask bit for t, or 0 if t is not in the universe.
func bit(t Type) TypeSet {
	for i, u := range Universe {
		if u == t {
			return 1 << i
		}
	}
	return 0
}

// Make builds a TypeSet from the given types. Unknown types are ignored.
func Make(types ...Type) TypeSet {
	var s TypeSet
	for _, t := range types {
		s |= bit(t)
	}
	return s
}

// Has reports whether t is in the set.
func (s TypeSet) Has(t Type) bool { return s&bit(t) != 0 }

// Union returns s ∪ o.
func (s TypeSet) Union(o TypeSet) TypeSet { return s | o }

// Diff returns the types in s that are not in o.
func (s TypeSet) Diff(o TypeSet) TypeSet { return s &^ o }

// SubsetOf reports whether every type in s is also in o.
func (s TypeSet) SubsetOf(o TypeSet) bool { return s&^o == 0 }

// Count returns the number of types in the set.
func (s TypeSet) Count() int {
	n := 0
	for s != 0 {
		s &= s - 1
		n++
	}
	return n
}

// Slice expands the set into types, in universe order.
func (s TypeSet) Slice() []Type {
	var out []Type
	for i, t := range Universe {
		if s&(1<<i) != 0 {
			out = append(out, t)
		}
	}
	return out
}

// String renders the set like "Artifact Creature". Empty set renders as "".
func (s TypeSet) String() string {
	parts := s.Slice()
	b := make([]string, len(parts))
	for i, t := range parts {
		b[i] = string(t)
	}
	return strings.Join(b, " ")
}

// Card is an immutable card value. One Card is created per distinct name and
// shared by every copy of that name in a deck.
type Card struct {
	Name      string
	ManaValue float64
	Types     TypeSet
}

// ParseTypeLine derives the tracked types from a free-text type line by
// case-insensitive substring containment, not tokenization: an
// "Artifact Creature — Golem" line matches both Artifact and Creature.
func ParseTypeLine(line string) TypeSet {
	lower := strings.ToLower(line)
	var s TypeSet
	for i, t := range Universe {
		if strings.Contains(lower, strings.ToLower(string(t))) {
			s |= 1 << i
		}
	}
	return s
}
