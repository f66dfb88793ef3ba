// Package slug implements compound URL segments of the form <slug>-<id>:
// deriving the canonical segment for an entity and deciding whether an
// incoming request should render or redirect.
package slug

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrMalformedSegment means the segment does not end in -<digits> or
	// has an empty slug part.
	ErrMalformedSegment = errors.New("malformed slug segment")
	// ErrInvalidID means the trailing digit run does not fit an id.
	ErrInvalidID = errors.New("invalid id in slug segment")
	// ErrNotFound means the backing fetch produced no entity. Upstream
	// failures collapse into this too; callers treat it as a 404.
	ErrNotFound = errors.New("entity not found")
)

var (
	segmentPattern   = regexp.MustCompile(`^(.+)-(\d+)$`)
	nonSlugRunes     = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns       = regexp.MustCompile(`-{2,}`)
	trailingIDSuffix = regexp.MustCompile(`-\d+$`)
)

// Entity is anything addressable by a compound segment.
type Entity interface {
	EntityID() uint
	SlugSource() string
}

// Outcome says what the caller should do with a resolved segment.
type Outcome int

const (
	// Render means the request matched the canonical segment exactly.
	Render Outcome = iota
	// Redirect means the caller must redirect to Resolution.Canonical.
	Redirect
)

// Resolution is the result of resolving a compound segment.
type Resolution[T Entity] struct {
	Outcome   Outcome
	Entity    T
	Canonical string
}

// Parse splits a compound segment into its slug base and numeric id.
// Everything up to the last hyphen is the base; the trailing digit run is
// the id. The base must be non-empty, so "-123" is malformed.
func Parse(segment string) (base string, id uint, err error) {
	m := segmentPattern.FindStringSubmatch(segment)
	if m == nil {
		return "", 0, ErrMalformedSegment
	}

	parsed, convErr := strconv.ParseUint(m[2], 10, 32)
	if convErr != nil {
		return "", 0, ErrInvalidID
	}

	return m[1], uint(parsed), nil
}

// Canonicalize derives the canonical slug base from an entity's name or
// slug field: lowercase, whitespace runs become single hyphens, anything
// outside [a-z0-9-] is dropped, hyphen runs collapse, and a trailing
// -<digits> suffix already embedded in the source is stripped so ids never
// stack up across re-canonicalization.
func Canonicalize(source string) string {
	s := strings.ToLower(strings.TrimSpace(source))
	s = strings.Join(strings.Fields(s), "-")
	s = nonSlugRunes.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	s = trailingIDSuffix.ReplaceAllString(s, "")
	return s
}

// Segment builds the canonical compound segment for an entity.
func Segment(e Entity) string {
	return fmt.Sprintf("%s-%d", Canonicalize(e.SlugSource()), e.EntityID())
}

// Resolve validates an incoming segment, fetches the backing entity, and
// decides render-vs-redirect. The fetch callback is the only I/O; every
// failure path (parse, conversion, fetch error) maps to one of
// the package sentinels and the caller answers with a 404. Comparison is
// exact string equality, so even a case-only mismatch redirects rather
// than silently rendering a non-canonical URL.
func Resolve[T Entity](segment string, fetch func(id uint) (T, error)) (Resolution[T], error) {
	_, id, err := Parse(segment)
	if err != nil {
		return Resolution[T]{}, err
	}

	entity, err := fetch(id)
	if err != nil {
		return Resolution[T]{}, fmt.Errorf("%w: id %d: %v", ErrNotFound, id, err)
	}

	canonical := Segment(entity)

	res := Resolution[T]{Entity: entity, Canonical: canonical}
	if segment == canonical {
		res.Outcome = Render
	} else {
		res.Outcome = Redirect
	}
	return res, nil
}
