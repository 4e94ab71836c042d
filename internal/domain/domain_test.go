package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeResult_ToSelectedLocation(t *testing.T) {
	tests := []struct {
		name        string
		place       GeocodeResult
		expected    SelectedLocation
		description string
	}{
		{
			name: "city and state present",
			place: GeocodeResult{
				ID:          1,
				DisplayName: "Fianarantsoa, Haute Matsiatra, Madagascar",
				Lat:         "-21.4536",
				Lon:         "47.0857",
				Address: map[string]string{
					"city":   "Fianarantsoa",
					"state":  "Haute Matsiatra",
					"county": "Fianarantsoa I",
				},
			},
			expected: SelectedLocation{
				Name:        "Fianarantsoa, Haute Matsiatra, Madagascar",
				City:        "Fianarantsoa",
				Region:      "Haute Matsiatra",
				Commune:     "Fianarantsoa I",
				Lat:         "-21.4536",
				Lon:         "47.0857",
				DisplayName: "Fianarantsoa, Haute Matsiatra, Madagascar",
			},
			description: "Should take city, state and county directly",
		},
		{
			name: "fallback chain for village",
			place: GeocodeResult{
				DisplayName: "Ambohimanga",
				Address: map[string]string{
					"village":        "Ambohimanga",
					"state_district": "Analamanga",
				},
			},
			expected: SelectedLocation{
				Name:        "Ambohimanga",
				City:        "Ambohimanga",
				Region:      "Analamanga",
				Commune:     "Ambohimanga",
				DisplayName: "Ambohimanga",
			},
			description: "Village fills both city and commune, state_district fills region",
		},
		{
			name:        "no address",
			place:       GeocodeResult{DisplayName: "Somewhere", Lat: "1", Lon: "2"},
			expected:    SelectedLocation{Name: "Somewhere", DisplayName: "Somewhere", Lat: "1", Lon: "2"},
			description: "Missing address yields empty components",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.place.ToSelectedLocation(), tt.description)
		})
	}
}

func TestParseAdminLevel(t *testing.T) {
	for in, want := range map[string]AdminLevel{
		"region":    LevelRegion,
		"regions":   LevelRegion,
		"district":  LevelDistrict,
		"districts": LevelDistrict,
		"commune":   LevelCommune,
		"communes":  LevelCommune,
	} {
		got, err := ParseAdminLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseAdminLevel("zone")
	assert.Error(t, err)
}

func TestAdminArea_ParentNames(t *testing.T) {
	commune := AdminArea{Code: "MG11101", Name: "Antananarivo Renivohitra", ParentName: "Antananarivo Renivohitra", RegionName: "Analamanga"}
	assert.Equal(t, []string{"Antananarivo Renivohitra", "Analamanga"}, commune.ParentNames())

	region := AdminArea{Code: "MG11", Name: "Analamanga"}
	assert.Empty(t, region.ParentNames())

	same := AdminArea{ParentName: "Boeny", RegionName: "Boeny"}
	assert.Equal(t, []string{"Boeny"}, same.ParentNames())
}

func TestChatStatus_Valid(t *testing.T) {
	assert.True(t, ChatStatusPending.Valid())
	assert.True(t, ChatStatusCompleted.Valid())
	assert.True(t, ChatStatusError.Valid())
	assert.False(t, ChatStatus("done").Valid())
}

func TestReport_LocationRoundTrip(t *testing.T) {
	loc := SelectedLocation{Name: "A", City: "B", Region: "C", Commune: "D", Lat: "1", Lon: "2", DisplayName: "E"}
	var r Report
	r.SetLocation(loc)
	assert.Equal(t, loc, r.Location())
	assert.False(t, loc.IsZero())
	assert.True(t, SelectedLocation{}.IsZero())
}

func TestAttachmentKey(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{"plain", "rapport.pdf", "reports/r1/rapport.pdf"},
		{"spaces and accents", "Rapport été 2025.pdf", "reports/r1/Rapport_t_2025.pdf"},
		{"path traversal", "../../etc/passwd.pdf", "reports/r1/passwd.pdf"},
		{"windows path", `C:\Users\rakoto\doc.pdf`, "reports/r1/doc.pdf"},
		{"empty", "", "reports/r1/attachment.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttachmentKey("r1", tt.fileName))
		})
	}
}
