package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawHotelNormalize_AmenitiesAlias(t *testing.T) {
	var raw RawHotel
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Harbour Inn",
		"amenities": ["Pool", "wifi"],
		"location": "Old Port",
		"rating": 8.4
	}`), &raw))

	h := raw.Normalize()
	assert.Equal(t, "Harbour Inn", h.Name)
	assert.Equal(t, "", h.Description)
	assert.Equal(t, "", h.Address)
	assert.Equal(t, "Old Port", h.Location)
	assert.Equal(t, []string{"Pool", "wifi"}, h.Facilities)
	assert.InDelta(t, 8.4, h.Rating, 0.0001)
}

func TestRawHotelNormalize_EmptyRecord(t *testing.T) {
	var raw RawHotel
	require.NoError(t, json.Unmarshal([]byte(`{}`), &raw))

	h := raw.Normalize()
	assert.Empty(t, h.Name)
	assert.NotNil(t, h.Facilities)
	assert.Empty(t, h.Facilities)
	assert.Zero(t, h.Rating)
}

func TestRawHotelNormalize_FacilitiesWinOverAmenities(t *testing.T) {
	var raw RawHotel
	require.NoError(t, json.Unmarshal([]byte(`{
		"facilities": ["Spa", "spa", " "],
		"amenities": ["Sauna"]
	}`), &raw))
	assert.Equal(t, []string{"Spa"}, raw.Normalize().Facilities)

	raw = RawHotel{}
	require.NoError(t, json.Unmarshal([]byte(`{"facilities": [], "amenities": ["Sauna"]}`), &raw))
	assert.Equal(t, []string{}, raw.Normalize().Facilities)

	raw = RawHotel{}
	require.NoError(t, json.Unmarshal([]byte(`{"facilities": null, "amenities": ["Sauna"]}`), &raw))
	assert.Equal(t, []string{"Sauna"}, raw.Normalize().Facilities)
}

func TestMergeFacilities_DedupesAcrossLists(t *testing.T) {
	got := MergeFacilities([]string{"Spa", " yoga ", ""}, []string{"spa", "Gym"})
	assert.Equal(t, []string{"Spa", "yoga", "Gym"}, got)
}
