package slug

import (
	"errors"
	"fmt"
	"testing"
)

type fakeEntity struct {
	id   uint
	name string
}

func (f *fakeEntity) EntityID() uint     { return f.id }
func (f *fakeEntity) SlugSource() string { return f.name }

func fetchFixed(e *fakeEntity) func(id uint) (*fakeEntity, error) {
	return func(id uint) (*fakeEntity, error) {
		if e != nil && e.id == id {
			return e, nil
		}
		return nil, errors.New("no such entity")
	}
}

func TestParseExtractsTrailingID(t *testing.T) {
	cases := []struct {
		segment string
		base    string
		id      uint
	}{
		{"indian-institute-of-technology-101", "indian-institute-of-technology", 101},
		{"iit-delhi-101", "iit-delhi", 101},
		{"nit-2026-batch-7", "nit-2026-batch", 7},
		{"x-1", "x", 1},
	}

	for _, tc := range cases {
		base, id, err := Parse(tc.segment)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.segment, err)
		}
		if base != tc.base || id != tc.id {
			t.Fatalf("Parse(%q) = (%q, %d), want (%q, %d)", tc.segment, base, id, tc.base, tc.id)
		}
	}
}

func TestParseRejectsMalformedSegments(t *testing.T) {
	for _, segment := range []string{"", "no-id-here", "123", "-123", "abc-", "abc-12x"} {
		if _, _, err := Parse(segment); !errors.Is(err, ErrMalformedSegment) {
			t.Fatalf("Parse(%q) = %v, want ErrMalformedSegment", segment, err)
		}
	}
}

func TestParseRejectsOverflowingID(t *testing.T) {
	if _, _, err := Parse("big-99999999999999999999"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID for overflowing id, got %v", err)
	}
}

func TestCanonicalizeNormalizesNames(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"IIT Delhi", "iit-delhi"},
		{"  Indian   Institute of Technology  ", "indian-institute-of-technology"},
		{"St. Xavier's College, Mumbai", "st-xaviers-college-mumbai"},
		{"iit-delhi-101", "iit-delhi"},
		{"NEET (UG) 2024", "neet-ug"},
	}

	for _, tc := range cases {
		if got := Canonicalize(tc.in); got != tc.want {
			t.Fatalf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveRendersCanonicalSegment(t *testing.T) {
	entity := &fakeEntity{id: 101, name: "IIT Delhi"}

	res, err := Resolve("iit-delhi-101", fetchFixed(entity))
	if err != nil {
		t.Fatalf("expected resolution, got %v", err)
	}
	if res.Outcome != Render {
		t.Fatalf("expected Render for canonical segment, got redirect to %q", res.Canonical)
	}
	if res.Entity != entity {
		t.Fatal("expected the fetched entity to be returned")
	}
}

func TestResolveIsStable(t *testing.T) {
	// A rendered segment must resolve to Render again, otherwise a
	// redirect loop is possible.
	entity := &fakeEntity{id: 101, name: "IIT Delhi"}

	first, err := Resolve("old-name-101", fetchFixed(entity))
	if err != nil {
		t.Fatalf("expected resolution, got %v", err)
	}
	if first.Outcome != Redirect {
		t.Fatal("expected stale segment to redirect")
	}

	second, err := Resolve(first.Canonical, fetchFixed(entity))
	if err != nil {
		t.Fatalf("expected resolution of canonical segment, got %v", err)
	}
	if second.Outcome != Render {
		t.Fatalf("canonical segment %q redirected again to %q", first.Canonical, second.Canonical)
	}
}

func TestResolveRedirectsStaleSegment(t *testing.T) {
	entity := &fakeEntity{id: 101, name: "IIT Delhi"}

	res, err := Resolve("old-name-101", fetchFixed(entity))
	if err != nil {
		t.Fatalf("expected resolution, got %v", err)
	}
	if res.Outcome != Redirect {
		t.Fatal("expected Redirect for stale segment")
	}
	if res.Canonical != "iit-delhi-101" {
		t.Fatalf("expected redirect target iit-delhi-101, got %q", res.Canonical)
	}
}

func TestResolveRedirectsOnCaseMismatch(t *testing.T) {
	entity := &fakeEntity{id: 101, name: "IIT Delhi"}

	res, err := Resolve("IIT-Delhi-101", fetchFixed(entity))
	if err != nil {
		t.Fatalf("expected resolution, got %v", err)
	}
	if res.Outcome != Redirect {
		t.Fatal("case-only mismatch must redirect, not render")
	}
}

func TestResolveMapsFetchFailureToNotFound(t *testing.T) {
	res, err := Resolve("iit-delhi-101", fetchFixed(nil))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v (resolution %+v)", err, res)
	}
}

func TestSegmentStripsEmbeddedIDSuffix(t *testing.T) {
	// An upstream slug that already carries "-<id>" must not stack ids.
	entity := &fakeEntity{id: 42, name: "iit-bombay-42"}
	if got := Segment(entity); got != "iit-bombay-42" {
		t.Fatalf("Segment = %q, want iit-bombay-42", got)
	}
}

func TestResolvePropagatesParseFailure(t *testing.T) {
	fetchCalls := 0
	fetch := func(id uint) (*fakeEntity, error) {
		fetchCalls++
		return nil, fmt.Errorf("should not be called")
	}

	if _, err := Resolve("not-a-compound", fetch); !errors.Is(err, ErrMalformedSegment) {
		t.Fatalf("expected ErrMalformedSegment, got %v", err)
	}
	if fetchCalls != 0 {
		t.Fatalf("fetch must not run on parse failure, ran %d times", fetchCalls)
	}
}
