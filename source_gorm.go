package seekpage

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// GormSource adapts a SQL table behind gorm into an ordered record source.
// The scan orders by the spec, expands the start token into a keyset filter
// in disjunctive normal form and lets the database bound the result, so no
// rows beyond the page are transferred.
//
// The spec's primary field and tie-break field name the columns to select;
// identifiers are normalized to string form while scanning.
type GormSource struct {
	db    *gorm.DB
	table string
}

func NewGormSource(db *gorm.DB, table string) *GormSource {
	return &GormSource{
		db:    db,
		table: table,
	}
}

type gormSourceRow struct {
	Value string
	ID    string
}

// Scan - implements Source.
func (s *GormSource) Scan(ctx context.Context, spec SortSpec, start *Token, limit int) (ScanResult, error) {
	if err := spec.validate(); err != nil {
		return ScanResult{}, err
	}

	if err := start.validate(spec); err != nil {
		return ScanResult{}, err
	}

	query := s.db.WithContext(ctx).
		Table(s.table).
		Select(fmt.Sprintf("%s AS value, %s AS id", spec.Primary().Field, spec.TieBreak().Field))

	query = spec.Apply(query)
	if exp := start.toDNF().toGORMExpression(); exp != nil {
		query = query.Clauses(exp)
	}
	query = query.Limit(limit)

	var rows []gormSourceRow
	if err := query.Find(&rows).Error; err != nil {
		return ScanResult{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	if len(rows) == 0 {
		return ScanResult{}, nil
	}

	records := lo.Map(rows, func(r gormSourceRow, _ int) Record {
		return Record{ID: r.ID, Value: r.Value}
	})

	return ScanResult{
		Records: records,
		First:   beforeToken(spec, records[0]),
		Last:    afterToken(spec, records[len(records)-1]),
	}, nil
}

var _ Source = (*GormSource)(nil)
