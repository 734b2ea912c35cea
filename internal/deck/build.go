package deck

import (
	"context"
	"errors"

	"github.com/mtgtools/revealsim/internal/card"
	"github.com/mtgtools/revealsim/internal/catalog"
)

// Deck is a multiset of card instances; quantity N of a name contributes N
// entries, each sharing the same Card value. Order carries no meaning.
type Deck []card.Card

// ErrEmptyDeck means a build produced no cards, so there is nothing to
// analyze.
var ErrEmptyDeck = errors.New("deck is empty")

// Builder expands decklist entries into a Deck using a catalog lookup.
// Wrap the lookup in a catalog.Cache so repeated builds only resolve each
// distinct name once.
type Builder struct {
	Catalog catalog.Lookup
}

// NewBuilder creates a Builder over the given lookup.
func NewBuilder(lookup catalog.Lookup) *Builder {
	return &Builder{Catalog: lookup}
}

// Build resolves every entry and appends Quantity copies of each resolved
// card. A name that fails to resolve is skipped and recorded; one bad name
// never aborts the build. The returned error is non-nil only for a
// cancelled context.
func (b *Builder) Build(ctx context.Context, entries []Entry) (Deck, []string, error) {
	var (
		d       Deck
		skipped []string
	)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		c, err := b.Catalog.Lookup(ctx, e.Name)
		if err != nil {
			skipped = append(skipped, e.Name)
			continue
		}
		for i := 0; i < e.Quantity; i++ {
			d = append(d, c)
		}
	}
	return d, skipped, nil
}

// BuildText parses text and builds in one step.
func (b *Builder) BuildText(ctx context.Context, text string) (Deck, []string, error) {
	return b.Build(ctx, ParseDecklist(text))
}
