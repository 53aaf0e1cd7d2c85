package seekpage

// Package seekpage provides stable, bidirectional, cursor-based pagination
// over a sorted record set served by an ordered record source.
//
// Overview
//
// seekpage delimits pages with opaque position tokens anchored to exact
// records, so page boundaries stay well-defined even across runs of records
// sharing the same sort value:
//   - SortSpec: a primary sort field plus a unique tie-break field in the
//     same direction, forming a strict total order with no ties.
//   - Token: an opaque resumption point minted by a record source, valid
//     only against the SortSpec it was produced for.
//   - Page: one immutable window of the scan with its forward and backward
//     boundary tokens.
//
// Key concepts
//   - FetchPage: runs one bounded scan against a Source and assembles a Page.
//   - Page.Reverse / Page.Equal: reconcile pages fetched under a spec and
//     under its full reversal; the same logical page content-equals its
//     reversed counterpart after re-normalization.
//   - GormSource / SliceSource: SQL-backed and in-memory record sources.
//
// See README for examples and usage details.
