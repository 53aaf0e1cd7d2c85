package seekpage

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Record is one element of the ordered set: a globally unique identifier
// (normalized to string form) and the value of the primary sort field.
// Records are immutable once fetched.
type Record struct {
	ID    string
	Value string
}

// ScanResult is one bounded window returned by a Source. First resumes a
// scan immediately before the first returned record; Last resumes
// immediately after the last one, or after the exhaustion point when fewer
// than limit records remained. Both are nil when no records matched.
type ScanResult struct {
	Records []Record
	First   *Token
	Last    *Token
}

// Source is the ordered record store pagination runs against.
//
// A Source must execute an independent sorted range scan per call: reversing
// a traversal means scanning under spec.Reversed() from scratch, never
// walking an existing cursor backward. Interleaved independent scans over
// the same data must not interfere with each other.
//
// Tokens minted under one spec must be rejected with ErrInvalidToken when
// presented against an incompatible one, never silently reinterpreted.
// Failures to reach the underlying store should wrap ErrSourceUnavailable.
type Source interface {
	Scan(ctx context.Context, spec SortSpec, start *Token, limit int) (ScanResult, error)
}

// FetchConfig carries the per-call fetch parameters. Construct a fresh value
// for every call; the library never mutates or reuses a config, so no state
// leaks between calls.
type FetchConfig struct {
	// Limit is the maximum number of records on the page. Must be positive.
	Limit int
	// Start resumes the scan from a boundary token of a previous page.
	// Nil means the beginning of the ordered set.
	Start *Token
}

// PageRequest is intended for API payloads. For proper code generation,
// inline it:
//
//	type MyFilter struct {
//	    Paging PageRequest `json:",inline"`
//	}
type PageRequest struct {
	// Limit - maximum number of records to return in the response.
	Limit int `json:"limit"`
	// StartToken - base64-encoded token obtained via Token.String().
	// If empty, the first page with Limit records is returned.
	StartToken string `json:"startToken"`
}

// Decode converts PageRequest into a FetchConfig, normalizing Limit and
// decoding StartToken.
func (r PageRequest) Decode() (FetchConfig, error) {
	start, err := DecodeToken(r.StartToken)
	if err != nil {
		return FetchConfig{}, err
	}

	return FetchConfig{
		Limit: NormalizeLimit(r.Limit),
		Start: start,
	}, nil
}

// FetchPage runs exactly one bounded scan against src and assembles the
// resulting page.
//
// Two consecutive calls where the second starts from the first's forward
// token return the exact continuation of the first under the same spec: no
// record appears on both pages and none in between is skipped, even when
// the boundary splits a run of records sharing the primary value (the
// tie-break field fixes the split point).
//
// Each fetch is synchronous; chaining tokens across concurrent callers is
// undefined behavior. Confine one spec + token chain to one goroutine.
func FetchPage(ctx context.Context, src Source, spec SortSpec, cfg FetchConfig) (Page, error) {
	if err := spec.validate(); err != nil {
		return Page{}, fmt.Errorf("cannot fetch page: %w", err)
	}

	if cfg.Limit <= 0 {
		return Page{}, fmt.Errorf("cannot fetch page: %w: non-positive limit %d", ErrConfiguration, cfg.Limit)
	}

	if err := cfg.Start.validate(spec); err != nil {
		return Page{}, fmt.Errorf("cannot fetch page: %w", err)
	}

	res, err := src.Scan(ctx, spec, cfg.Start, cfg.Limit)
	if err != nil {
		// Keep the error taxonomy closed: anything the source does not
		// classify itself counts as the source being unavailable.
		if !errors.Is(err, ErrInvalidToken) && !errors.Is(err, ErrConfiguration) && !errors.Is(err, ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}

		return Page{}, fmt.Errorf("cannot fetch page: %w", err)
	}

	// A scan handing back more than the requested bound is ambiguous: the
	// boundary tokens would not correspond to the records consumed.
	if len(res.Records) > cfg.Limit {
		return Page{}, fmt.Errorf("cannot fetch page: %w: scan returned %d records for limit %d",
			ErrSourceUnavailable, len(res.Records), cfg.Limit)
	}

	if len(res.Records) == 0 {
		return Page{}, nil
	}

	entries := lo.Map(res.Records, func(r Record, _ int) Entry {
		return Entry{Value: r.Value, ID: r.ID}
	})

	return NewPage(entries, res.First, res.Last), nil
}
