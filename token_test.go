package seekpage

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Token_Stringify_Decode_And_Compare(t *testing.T) {
	spec, err := NewSortSpecTieBreak("initials", "id", DirectionASC)
	require.NoError(t, err)

	token := afterToken(spec, Record{ID: "0042", Value: "BC"})
	enc := token.String()

	decoded, err := DecodeToken(enc)
	require.NoError(t, err)

	require.Equal(t, token.String(), decoded.String())
	require.NoError(t, decoded.validate(spec))
}

func Test_DecodeToken(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantNil bool
		wantErr bool
	}{
		{"empty string means start of set", "", true, false},
		{"broken base64", "%%%", false, true},
		{"base64 of broken json", _encoder.EncodeToString([]byte("{not json")), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeToken(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidToken)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantNil, got == nil)
		})
	}
}

func Test_Token_validate(t *testing.T) {
	spec, err := NewSortSpecTieBreak("initials", "id", DirectionASC)
	require.NoError(t, err)

	rec := Record{ID: "0042", Value: "BC"}

	otherSpec, err := NewSortSpecTieBreak("surname", "id", DirectionASC)
	require.NoError(t, err)

	wideSpec := SortSpec{fields: []FieldOrder{
		{Field: "initials", Direction: DirectionASC},
		{Field: "id", Direction: DirectionASC},
		{Field: "extra", Direction: DirectionASC},
	}}

	tests := []struct {
		name  string
		token *Token
		spec  SortSpec
		ok    bool
	}{
		{"nil token is always valid", nil, spec, true},
		{"forward boundary under producing spec", afterToken(spec, rec), spec, true},
		{"forward boundary under reversed spec", afterToken(spec, rec), spec.Reversed(), false},
		{"backward boundary under reversed spec", beforeToken(spec, rec), spec.Reversed(), true},
		{"backward boundary under producing spec", beforeToken(spec, rec), spec, false},
		{"anchor count mismatch", afterToken(spec, rec), wideSpec, false},
		{"column mismatch", afterToken(otherSpec, rec), spec, false},
		{
			"equality operator is not a resumption operator",
			&Token{anchors: []tokenAnchor{
				{Column: "initials", Value: "BC", Operator: operatorEq},
				{Column: "id", Value: "0042", Operator: OperatorGT},
			}},
			spec,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.token.validate(tt.spec); (err == nil) != tt.ok {
				t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
			}
		})
	}
}

func Test_Token_Label(t *testing.T) {
	spec, err := NewSortSpecTieBreak("initials", "id", DirectionASC)
	require.NoError(t, err)

	token := afterToken(spec, Record{ID: "0042", Value: "BC"})
	assert.Equal(t, "BC-0042", token.Label())

	assert.Equal(t, "", (*Token)(nil).Label())
}

func Test_Token_ToSQL(t *testing.T) {
	spec, err := NewSortSpecTieBreak("initials", "id", DirectionASC)
	require.NoError(t, err)

	token := afterToken(spec, Record{ID: "0042", Value: "BC"})

	sql, values := token.ToSQL()
	assert.Equal(t, "((initials > ?) OR (initials = ? AND id > ?))", sql)
	assert.Equal(t, []driver.Value{"BC", "BC", "0042"}, values)

	sql, values = (*Token)(nil).ToSQL()
	assert.Equal(t, "TRUE", sql)
	assert.Nil(t, values)
}

func Test_Token_admits(t *testing.T) {
	asc, err := NewSortSpecTieBreak("initials", "id", DirectionASC)
	require.NoError(t, err)
	desc := asc.Reversed()

	anchor := Record{ID: "0042", Value: "BC"}

	tests := []struct {
		name  string
		spec  SortSpec
		token *Token
		rec   Record
		want  bool
	}{
		{"larger value admitted", asc, afterToken(asc, anchor), Record{ID: "0001", Value: "BD"}, true},
		{"smaller value rejected", asc, afterToken(asc, anchor), Record{ID: "0099", Value: "BB"}, false},
		{"anchor itself rejected", asc, afterToken(asc, anchor), anchor, false},
		{"equal value splits on id", asc, afterToken(asc, anchor), Record{ID: "0043", Value: "BC"}, true},
		{"equal value below id rejected", asc, afterToken(asc, anchor), Record{ID: "0041", Value: "BC"}, false},
		{"descending admits smaller values", desc, beforeToken(asc, anchor), Record{ID: "0099", Value: "BB"}, true},
		{"descending rejects larger values", desc, beforeToken(asc, anchor), Record{ID: "0001", Value: "BD"}, false},
		{"descending equal value splits on id", desc, beforeToken(asc, anchor), Record{ID: "0041", Value: "BC"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.token.validate(tt.spec))
			assert.Equal(t, tt.want, tt.token.admits(tt.spec, tt.rec))
		})
	}
}
