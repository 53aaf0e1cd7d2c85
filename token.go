package seekpage

import (
	"bytes"
	"database/sql/driver"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

var _encoder = base64.RawURLEncoding

// tokenAnchor is one (column, value, operator) triple of a token. The
// operator records which side of the anchor record the token resumes from:
// under an ascending field ">" resumes after the anchor, "<" before it.
type tokenAnchor struct {
	Column   string   `json:"c"`
	Value    any      `json:"v"`
	Operator Operator `json:"o"`
}

// Token marks an exact resumption position in a scan, anchored to one record
// of the ordered set. Tokens are minted by record sources and are opaque to
// callers: the only supported operations are passing a token back as a scan
// start position and reading Label for logging. Never parse Token internals
// beyond Label.
//
// A token is valid only against the SortSpec whose directions agree with its
// operators. A forward boundary minted under spec S resumes scans under S;
// a backward boundary resumes scans under S.Reversed(). Presenting a token
// against any other spec fails with ErrInvalidToken rather than being
// silently reinterpreted.
//
// IMPORTANT:
// A token ALWAYS carries an anchor on the unique tie-break column. That is
// what lets a resumed scan split a run of equal primary values without
// duplicating or dropping records.
type Token struct {
	anchors []tokenAnchor
}

// afterToken mints the token resuming a scan under spec immediately after rec.
func afterToken(spec SortSpec, rec Record) *Token {
	return anchorToken(spec, rec, func(d Direction) Operator {
		return d.ForOperator()
	})
}

// beforeToken mints the token resuming a scan immediately before rec. Its
// operators agree with the reversed spec, which is the spec a backward scan
// actually runs under.
func beforeToken(spec SortSpec, rec Record) *Token {
	return anchorToken(spec, rec, func(d Direction) Operator {
		return d.Reversed().ForOperator()
	})
}

func anchorToken(spec SortSpec, rec Record, operatorFor func(Direction) Operator) *Token {
	anchors := make([]tokenAnchor, 0, len(spec.fields))
	for i, f := range spec.fields {
		value := rec.Value
		if i == len(spec.fields)-1 {
			value = rec.ID
		}

		anchors = append(anchors, tokenAnchor{
			Column:   f.Field,
			Value:    value,
			Operator: operatorFor(f.Direction),
		})
	}

	return &Token{anchors: anchors}
}

// DecodeToken attempts to parse a base64-encoded string into *Token.
// An empty string decodes to a nil token, meaning the start of the set.
func DecodeToken(b64String string) (*Token, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encoded token: %v", ErrInvalidToken, err)
	}

	var anchors []tokenAnchor
	if err = json.Unmarshal(jsonData, &anchors); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal json encoded token: %v", ErrInvalidToken, err)
	}

	return &Token{anchors: anchors}, nil
}

// String - implements fmt.Stringer. Returns the serialized form suitable for
// persisting a token chain across process boundaries.
func (t *Token) String() string {
	if t.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(t.anchors)
	if err != nil {
		panic(fmt.Errorf("cannot marshal token value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact token value: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// IsEmpty reports whether the token denotes no position at all. Empty tokens
// come from pages with no content and from decoding an empty string.
func (t *Token) IsEmpty() bool {
	return t == nil || len(t.anchors) == 0
}

// Label renders the anchor record as "value-id" for debugging and logging.
// It is the ONLY part of a token callers may inspect; the rendering carries
// no ordering or resumption semantics.
func (t *Token) Label() string {
	if t.IsEmpty() {
		return ""
	}

	return fmt.Sprintf("%v-%v", t.anchors[0].Value, t.anchors[len(t.anchors)-1].Value)
}

// ToSQL returns the token's resumption condition as an SQL expression with
// placeholder values.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", sql)
func (t *Token) ToSQL() (string, []driver.Value) {
	if t.IsEmpty() {
		return "TRUE", nil
	}

	return t.toDNF().toSQLClause()
}

// validate cross-checks the token against the spec of the scan it is about
// to start: anchor count, anchor columns in order and operator agreement
// with each field's direction. Empty tokens are always valid.
func (t *Token) validate(spec SortSpec) error {
	if t.IsEmpty() {
		return nil
	}

	// Reject any divergence between token anchors and the spec field list.
	if len(t.anchors) != len(spec.fields) {
		return fmt.Errorf("%w: anchor column count mismatch", ErrInvalidToken)
	}

	for i, anchor := range t.anchors {
		field := spec.fields[i]

		if anchor.Column != field.Field {
			return fmt.Errorf("%w: unexpected anchor column '%s'", ErrInvalidToken, anchor.Column)
		}

		if !anchor.Operator.Valid() {
			return fmt.Errorf("%w: invalid anchor operator '%s'", ErrInvalidToken, anchor.Operator)
		} else if anchor.Operator.ForDirection() != field.Direction {
			return fmt.Errorf("%w: anchor operator '%s' incompatible with %s ordering on '%s'",
				ErrInvalidToken, anchor.Operator, field.Direction, field.Field)
		}
	}

	return nil
}

// admits reports whether rec lies strictly past the token's anchor record in
// the order defined by spec. It is the in-memory equivalent of the DNF
// resumption filter a SQL source pushes into the database.
func (t *Token) admits(spec SortSpec, rec Record) bool {
	anchor := Record{
		Value: fmt.Sprint(t.anchors[0].Value),
		ID:    fmt.Sprint(t.anchors[len(t.anchors)-1].Value),
	}

	return spec.Compare(rec, anchor) > 0
}

// toDNF expands the token into its disjunctive normal form.
//
// The anchors form a set of conditions:
//
//	[(C1, O1, V1), (C2, O2, V2)... (Cn, On, Vn)]
//
// which inflate into the filter:
//
//	(C1 O1 V1) or (C1 = V1 and C2 O2 V2) ...
//
// In this shape the token unambiguously determines the position from which
// the scan continues, even inside a run of equal primary values.
func (t *Token) toDNF() tDNF {
	if t.IsEmpty() {
		return nil
	}

	dnf := make(tDNF, 0, len(t.anchors))
	for i := range t.anchors {
		disjunct := make(tDisjunct, 0, i+1)
		for _, previous := range t.anchors[:i] {
			disjunct = append(disjunct, tConjunct{
				Column:   previous.Column,
				Value:    previous.Value,
				Operator: operatorEq,
			})
		}
		disjunct = append(disjunct, tConjunct(t.anchors[i]))

		dnf = append(dnf, disjunct)
	}

	return dnf
}

var _ fmt.Stringer = (*Token)(nil)
