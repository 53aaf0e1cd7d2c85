package seekpage

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction for a single field.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (d Direction) Valid() bool {
	return d == DirectionASC || d == DirectionDESC
}

// Reversed returns the opposite direction.
func (d Direction) Reversed() Direction {
	switch d {
	case DirectionASC:
		return DirectionDESC
	case DirectionDESC:
		return DirectionASC
	default:
		panic(fmt.Errorf("cannot reverse direction '%s'", d))
	}
}

// ForOperator maps the direction to the comparison operator that continues
// a scan past an anchor record: ASC resumes with ">", DESC with "<".
func (d Direction) ForOperator() Operator {
	switch d {
	case DirectionASC:
		return OperatorGT
	case DirectionDESC:
		return OperatorLT
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", d))
	}
}

// DefaultTieBreakField is the identifier field appended to a SortSpec when
// no explicit tie-break field is given.
const DefaultTieBreakField = "id"

type (
	// FieldOrder is a single (field, direction) pair of a SortSpec.
	FieldOrder struct {
		Field     string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to fully qualified column names.
	// Use it when bare column names could cause an "ambiguous column name" error.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

// SortSpec establishes a strict total order over records: a primary sort
// field followed by a globally unique tie-break field in the same direction.
// The tie-break turns runs of equal primary values into a deterministic
// sequence, which keeps page boundaries well-defined when a boundary falls
// inside such a run.
//
// Construct via NewSortSpec or NewSortSpecTieBreak; the zero value is
// rejected by every operation that takes a SortSpec.
type SortSpec struct {
	fields []FieldOrder
}

var _availableFieldNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

// NewSortSpec builds a SortSpec ordering by primary in the given direction,
// with DefaultTieBreakField appended in the identical direction.
func NewSortSpec(primary string, direction Direction) (SortSpec, error) {
	return NewSortSpecTieBreak(primary, DefaultTieBreakField, direction)
}

// NewSortSpecTieBreak builds a SortSpec ordering by primary in the given
// direction, with the tie-break field appended in the identical direction.
// The tie-break field must be globally unique across records; that is what
// makes the combined order strict.
func NewSortSpecTieBreak(primary, tieBreak string, direction Direction) (SortSpec, error) {
	if primary == "" {
		return SortSpec{}, fmt.Errorf("%w: empty primary sort field", ErrConfiguration)
	}
	if tieBreak == "" {
		return SortSpec{}, fmt.Errorf("%w: empty tie-break field", ErrConfiguration)
	}
	if primary == tieBreak {
		return SortSpec{}, fmt.Errorf("%w: primary sort field '%s' equals tie-break field", ErrConfiguration, primary)
	}
	if !direction.Valid() {
		return SortSpec{}, fmt.Errorf("%w: invalid sort direction '%s'", ErrConfiguration, direction)
	}

	spec := SortSpec{fields: []FieldOrder{
		{Field: primary, Direction: direction},
		{Field: tieBreak, Direction: direction},
	}}

	if err := spec.validate(); err != nil {
		return SortSpec{}, err
	}

	return spec, nil
}

// Fields returns the ordered (field, direction) pairs of the spec. The last
// pair is always the tie-break field.
func (s SortSpec) Fields() []FieldOrder {
	return slices.Clone(s.fields)
}

// Primary returns the primary sort field.
func (s SortSpec) Primary() FieldOrder {
	return s.fields[0]
}

// TieBreak returns the unique tie-break field.
func (s SortSpec) TieBreak() FieldOrder {
	return s.fields[len(s.fields)-1]
}

// Reversed returns a new SortSpec with every field's direction flipped.
// Paging backward means scanning under the reversed spec from scratch, not
// walking an existing cursor backward: ordered record sources only support
// monotonic forward iteration per query.
func (s SortSpec) Reversed() SortSpec {
	return SortSpec{fields: lo.Map(s.fields, func(f FieldOrder, _ int) FieldOrder {
		return FieldOrder{Field: f.Field, Direction: f.Direction.Reversed()}
	})}
}

// Compare orders two records according to the spec: primary value first,
// identifier as tie-break. Returns a negative number when a precedes b,
// a positive number when it follows, and 0 only for the same record.
func (s SortSpec) Compare(a, b Record) int {
	if c := directedCompare(a.Value, b.Value, s.Primary().Direction); c != 0 {
		return c
	}

	return directedCompare(a.ID, b.ID, s.TieBreak().Direction)
}

// Less reports whether a strictly precedes b under the spec.
func (s SortSpec) Less(a, b Record) bool {
	return s.Compare(a, b) < 0
}

func directedCompare(a, b string, direction Direction) int {
	c := strings.Compare(a, b)
	if direction == DirectionDESC {
		return -c
	}

	return c
}

// ToSQLSlice converts the spec to a slice of strings in the form
// "<field> <direction>" suitable for SQL query builders.
//
// Example: for fields [{"initials", "ASC"}, {"id", "ASC"}] returns
// ["initials ASC", "id ASC"].
func (s SortSpec) ToSQLSlice() []string {
	ret := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		ret = append(ret, fmt.Sprintf("%s %s", f.Field, f.Direction))
	}

	return ret
}

// ToSQL converts the spec to a single string
// "<field_1> <direction_1>, <field_2> <direction_2>" suitable for embedding
// into an SQL query.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table ORDER BY %s", spec.ToSQL())
func (s SortSpec) ToSQL() string {
	return strings.Join(s.ToSQLSlice(), ", ")
}

// Apply applies the ordering to a gorm query.
func (s SortSpec) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(s.ToSQL())
}

func (s SortSpec) validate() error {
	if len(s.fields) < 2 {
		return fmt.Errorf("%w: sort spec lacks a tie-break field", ErrConfiguration)
	}

	for _, f := range s.fields {
		if !f.Direction.Valid() {
			return fmt.Errorf("%w: invalid sort direction '%s'", ErrConfiguration, f.Direction)
		}

		// Guard against SQL injection by restricting allowed characters in field names.
		if !lo.Every(_availableFieldNameSymbols, []rune(f.Field)) {
			return fmt.Errorf("%w: sort field name contains forbidden symbols '%s'", ErrConfiguration, f.Field)
		}
	}

	return nil
}

// ParseSortSpec builds a SortSpec from a string in the format
// "column asc|desc". Column aliases are resolved via ColumnMapping and the
// tie-break field is appended in the same direction. Returns an error if
// the alias is not found in the mapping.
func ParseSortSpec(stringOrdering string, columnMapping ColumnMapping, tieBreak string) (SortSpec, error) {
	aliases := lo.Keys(columnMapping)

	cutStringOrdering := strings.Split(strings.TrimSpace(stringOrdering), " ")
	if len(cutStringOrdering) != 2 {
		return SortSpec{}, fmt.Errorf("%w: invalid ordering string format '%s'", ErrConfiguration, stringOrdering)
	}

	columnAlias := cutStringOrdering[0]
	direction := Direction(strings.ToUpper(cutStringOrdering[1]))
	columnName := columnMapping[columnAlias]
	if columnName == "" {
		return SortSpec{}, fmt.Errorf("%w: invalid column alias. closest: '%s'", ErrConfiguration, closestAlias(columnAlias, aliases))
	}

	return NewSortSpecTieBreak(columnName, tieBreak, direction)
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
