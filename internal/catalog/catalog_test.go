package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mtgtools/revealsim/internal/card"
)

// fakeAPI serves a Scryfall-shaped /cards/named endpoint from a fixed table.
func fakeAPI(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	table := map[string]namedResp{
		"llanowar elves": {Name: "Llanowar Elves", CMC: 1, TypeLine: "Creature — Elf Druid"},
		"sol ring":       {Name: "Sol Ring", CMC: 1, TypeLine: "Artifact"},
		"forest":         {Name: "Forest", CMC: 0, TypeLine: "Basic Land — Forest"},
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		name := r.URL.Query().Get("exact")
		resp, ok := table[key(name)]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestClientLookup(t *testing.T) {
	srv := fakeAPI(t, nil)
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	got, err := c.Lookup(context.Background(), "Llanowar Elves")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Llanowar Elves" || got.ManaValue != 1 {
		t.Fatalf("unexpected card: %+v", got)
	}
	if got.Types != card.Make(card.Creature) {
		t.Fatalf("types = %v, want Creature", got.Types)
	}
}

func TestClientNotFound(t *testing.T) {
	srv := fakeAPI(t, nil)
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "No Such Card")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCacheHitsUpstreamOnce(t *testing.T) {
	var hits atomic.Int64
	srv := fakeAPI(t, &hits)
	defer srv.Close()

	cache := NewCache(NewClient(srv.URL, time.Second))
	for i := 0; i < 5; i++ {
		if _, err := cache.Lookup(context.Background(), "Sol Ring"); err != nil {
			t.Fatal(err)
		}
	}
	// case-insensitive: same entry
	if _, err := cache.Lookup(context.Background(), "sol ring"); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Fatalf("upstream hit %d times, want 1", hits.Load())
	}
	if cache.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", cache.Len())
	}

	cache.Reset()
	if cache.Len() != 0 {
		t.Fatalf("cache len after Reset = %d, want 0", cache.Len())
	}
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	var hits atomic.Int64
	srv := fakeAPI(t, &hits)
	defer srv.Close()

	cache := NewCache(NewClient(srv.URL, time.Second))
	for i := 0; i < 3; i++ {
		if _, err := cache.Lookup(context.Background(), "Nonexistent"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	}
	if hits.Load() != 3 {
		t.Fatalf("upstream hit %d times, want 3 (failures must not cache)", hits.Load())
	}
}

// slowLookup blocks every call until released, counting invocations.
type slowLookup struct {
	calls   atomic.Int64
	release chan struct{}
}

func (s *slowLookup) Lookup(ctx context.Context, name string) (card.Card, error) {
	s.calls.Add(1)
	<-s.release
	return card.Card{Name: name, Types: card.Make(card.Artifact)}, nil
}

func TestCacheSingleFlight(t *testing.T) {
	slow := &slowLookup{release: make(chan struct{})}
	cache := NewCache(slow)

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := cache.Lookup(context.Background(), "Sol Ring"); err != nil {
				t.Errorf("lookup: %v", err)
			}
		}()
	}
	// let the goroutines pile up on the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(slow.release)
	wg.Wait()

	if got := slow.calls.Load(); got != 1 {
		t.Fatalf("upstream called %d times, want 1", got)
	}
}

func TestClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Lookup(context.Background(), "Anything")
	if err == nil {
		t.Fatal("want error on 500")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("500 must not map to ErrNotFound: %v", err)
	}
	if want := fmt.Sprintf("unexpected status %d", http.StatusInternalServerError); !strings.Contains(err.Error(), want) {
		t.Fatalf("err = %v, want mention of status", err)
	}
}
