package seekpage

import "errors"

// Failures surfaced by FetchPage and the record sources wrap one of these
// sentinels, so callers can branch with errors.Is. The library never retries
// or swallows a source failure: a silently retried scan could hand back a
// page whose boundary tokens are stale relative to the records consumed.
var (
	// ErrConfiguration reports an invalid SortSpec or fetch configuration.
	ErrConfiguration = errors.New("invalid pagination configuration")

	// ErrInvalidToken reports a position token that is corrupt or was minted
	// under an incompatible SortSpec.
	ErrInvalidToken = errors.New("invalid position token")

	// ErrSourceUnavailable reports that the ordered record source could not
	// be reached or returned an ambiguous result for a single scan.
	ErrSourceUnavailable = errors.New("record source unavailable")
)
