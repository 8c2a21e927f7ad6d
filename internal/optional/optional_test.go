package optional

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listing struct {
	Name  string         `json:"name"`
	Price Value[float64] `json:"price,omitzero"`
	Logo  Value[string]  `json:"logo,omitzero"`
}

func TestAbsentFieldsAreOmitted(t *testing.T) {
	out, err := json.Marshal(listing{Name: "billboard"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"billboard"}`, string(out))

	out, err = json.Marshal(listing{Name: "billboard", Price: Some(500.0), Logo: Some("/logo.png")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"billboard","price":500,"logo":"/logo.png"}`, string(out))
}

func TestUnmarshalNullAndMissing(t *testing.T) {
	var l listing
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","price":null}`), &l))
	assert.False(t, l.Price.IsPresent())
	assert.False(t, l.Logo.IsPresent())

	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","price":12.5}`), &l))
	price, ok := l.Price.Get()
	assert.True(t, ok)
	assert.Equal(t, 12.5, price)
}

func TestFromNull(t *testing.T) {
	assert.False(t, FromNullString(sql.NullString{}).IsPresent())
	assert.Equal(t, "a", FromNullString(sql.NullString{String: "a", Valid: true}).OrElse(""))
	assert.Equal(t, 3, FromNullInt64(sql.NullInt64{Int64: 3, Valid: true}).OrElse(0))
	assert.Equal(t, 7.0, FromNullFloat64(sql.NullFloat64{}).OrElse(7))
	assert.Equal(t, sql.NullFloat64{Float64: 2, Valid: true}, ToNullFloat64(Some(2.0)))
}

func TestMap(t *testing.T) {
	doubled := Map(Some(2), func(v int) int { return v * 2 })
	assert.Equal(t, 4, doubled.OrElse(0))
	assert.False(t, Map(None[int](), func(v int) int { return v }).IsPresent())
}
