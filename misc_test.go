package seekpage

import (
	"fmt"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

// testRecords builds the reference dataset: 4 records with initials "BD" and
// 4 with "BC" placed around the page breaks, followed by 80 two-letter codes
// cycling A-Z. Identifiers are zero-padded so the lexicographic tie-break
// matches insertion order.
func testRecords() []Record {
	var records []Record

	id := 0
	add := func(value string) {
		id++
		records = append(records, Record{ID: fmt.Sprintf("%04d", id), Value: value})
	}

	for i := 0; i < 4; i++ {
		add("BD")
	}
	for i := 0; i < 4; i++ {
		add("BC")
	}
	for i := 0; i < 80; i++ {
		add(string([]rune{
			rune('A' + (i/26)%26),
			rune('A' + i%26),
		}))
	}

	return records
}
