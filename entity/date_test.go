package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, time.March, 7)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-07"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"07-03-2026"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`20260307`), &back))
	assert.ErrorIs(t, json.Unmarshal([]byte(`"0000-01-01"`), &back), ErrDateOutOfRange)
}

func TestDateBSON(t *testing.T) {
	p := Product{ID: 1, Name: "Milk", ExpiryDate: NewDate(2026, time.October, 21)}

	raw, err := bson.Marshal(p)
	require.NoError(t, err)

	var back Product
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, "2026-10-21", back.ExpiryDate.String())
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	late := time.Date(2026, time.January, 31, 23, 30, 0, 0, loc)
	assert.Equal(t, "2026-01-31", DateOf(late).String())
	assert.Equal(t, "2026-02-01", DateOf(late).AddDays(1).String())
}
