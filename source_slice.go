package seekpage

import (
	"context"
	"slices"
)

// SliceSource is an in-memory ordered record source. Every scan sorts a copy
// of the records under the requested spec, which makes SliceSource the
// reference implementation of the Source contract: independent forward and
// reversed scans over the same data, token minting on both boundaries and
// strict token/spec compatibility checks.
type SliceSource struct {
	records []Record
}

func NewSliceSource(records ...Record) *SliceSource {
	return &SliceSource{records: slices.Clone(records)}
}

// Scan - implements Source.
func (s *SliceSource) Scan(_ context.Context, spec SortSpec, start *Token, limit int) (ScanResult, error) {
	if err := spec.validate(); err != nil {
		return ScanResult{}, err
	}

	if err := start.validate(spec); err != nil {
		return ScanResult{}, err
	}

	ordered := slices.Clone(s.records)
	slices.SortFunc(ordered, spec.Compare)

	from := 0
	if !start.IsEmpty() {
		from = len(ordered)
		for i, rec := range ordered {
			if start.admits(spec, rec) {
				from = i
				break
			}
		}
	}

	to := min(from+limit, len(ordered))
	window := ordered[from:to]
	if len(window) == 0 {
		return ScanResult{}, nil
	}

	return ScanResult{
		Records: slices.Clone(window),
		First:   beforeToken(spec, window[0]),
		Last:    afterToken(spec, window[len(window)-1]),
	}, nil
}

var _ Source = (*SliceSource)(nil)
