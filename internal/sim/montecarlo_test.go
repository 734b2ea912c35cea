package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/mtgtools/revealsim/internal/card"
)

// typedTestDeck is a 60-card deck with a realistic type spread.
func typedTestDeck() []card.Card {
	add := func(d []card.Card, n int, c card.Card) []card.Card {
		for i := 0; i < n; i++ {
			d = append(d, c)
		}
		return d
	}
	var d []card.Card
	d = add(d, 22, card.Card{Name: "Forest", ManaValue: 0, Types: card.Make(card.Land)})
	d = add(d, 12, card.Card{Name: "Bear", ManaValue: 2, Types: card.Make(card.Creature)})
	d = add(d, 6, card.Card{Name: "Signet", ManaValue: 2, Types: card.Make(card.Artifact)})
	d = add(d, 4, card.Card{Name: "Golem", ManaValue: 4, Types: card.Make(card.Artifact, card.Creature)})
	d = add(d, 6, card.Card{Name: "Bolt", ManaValue: 1, Types: card.Make(card.Instant)})
	d = add(d, 5, card.Card{Name: "Rite", ManaValue: 3, Types: card.Make(card.Sorcery)})
	d = add(d, 3, card.Card{Name: "Saga", ManaValue: 3, Types: card.Make(card.Enchantment)})
	d = add(d, 2, card.Card{Name: "Teferi", ManaValue: 5, Types: card.Make(card.Planeswalker)})
	return d
}

func TestRunShape(t *testing.T) {
	p := Params{XMin: 4, XMax: 10, Trials: 200, Seed: 42}
	res, err := Run(context.Background(), typedTestDeck(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 7 {
		t.Fatalf("got %d reveal sizes, want 7", len(res))
	}
	for x := p.XMin; x <= p.XMax; x++ {
		xs, ok := res[x]
		if !ok {
			t.Fatalf("missing results for x=%d", x)
		}
		if len(xs) != p.Trials {
			t.Fatalf("x=%d has %d trials, want %d", x, len(xs), p.Trials)
		}
		for i, v := range xs {
			if v < 0 || v > card.NumTypes {
				t.Fatalf("x=%d trial=%d outcome %d out of range", x, i, v)
			}
		}
	}
}

func TestRunReproducibleWithSeed(t *testing.T) {
	deck := typedTestDeck()
	p := Params{XMin: 4, XMax: 6, Trials: 100, Seed: 1234}

	a, err := Run(context.Background(), deck, p)
	if err != nil {
		t.Fatal(err)
	}
	// different worker count must not change outcomes
	p.Workers = 1
	b, err := Run(context.Background(), deck, p)
	if err != nil {
		t.Fatal(err)
	}
	for x := p.XMin; x <= p.XMax; x++ {
		for i := range a[x] {
			if a[x][i] != b[x][i] {
				t.Fatalf("x=%d trial=%d: %d vs %d", x, i, a[x][i], b[x][i])
			}
		}
	}
}

func TestRunEmptyDeck(t *testing.T) {
	p := Params{XMin: 4, XMax: 6, Trials: 50, Seed: 9}
	res, err := Run(context.Background(), nil, p)
	if err != nil {
		t.Fatal(err)
	}
	for x := p.XMin; x <= p.XMax; x++ {
		for _, v := range res[x] {
			if v != 0 {
				t.Fatalf("empty deck produced outcome %d at x=%d", v, x)
			}
		}
	}
}

func TestRunMonotonicTendency(t *testing.T) {
	// statistical, not strict: more reveals cannot reduce achievable
	// coverage, so the means should not invert over a large trial count
	p := Params{XMin: 4, XMax: 10, Trials: 5000, Seed: 77}
	res, err := Run(context.Background(), typedTestDeck(), p)
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(res)
	if s[10].Mean < s[4].Mean {
		t.Fatalf("mean at x=10 (%f) below mean at x=4 (%f)", s[10].Mean, s[4].Mean)
	}
}

func TestRunValidation(t *testing.T) {
	if _, err := Run(context.Background(), nil, Params{XMin: 0, XMax: 5, Trials: 10}); !errors.Is(err, ErrBadRange) {
		t.Fatalf("err = %v, want ErrBadRange", err)
	}
	if _, err := Run(context.Background(), nil, Params{XMin: 6, XMax: 5, Trials: 10}); !errors.Is(err, ErrBadRange) {
		t.Fatalf("err = %v, want ErrBadRange", err)
	}
	if _, err := Run(context.Background(), nil, Params{XMin: 4, XMax: 5, Trials: 0}); err == nil {
		t.Fatal("want error for zero trials")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, typedTestDeck(), Params{XMin: 4, XMax: 10, Trials: 10, Seed: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.XMin != 4 || p.XMax != 10 || p.Trials != 10000 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}
