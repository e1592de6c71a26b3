package lang_test

import (
	"testing"

	"github.com/nkoz/moodcharts/data"
	"github.com/nkoz/moodcharts/lang"
	"github.com/stretchr/testify/assert"
)

func TestDetectEnglish(t *testing.T) {
	det := lang.Detect("The sun always shines on television")
	assert.True(t, det.OK)
	assert.Equal(t, "en", det.Code)
}

func TestDetectEmptyIsUnknown(t *testing.T) {
	for _, text := range []string{"", "   ", "\t"} {
		det := lang.Detect(text)
		assert.False(t, det.OK)
		assert.Equal(t, data.LanguageUnknown, det.Code)
	}
}

func TestDetectNeverErrors(t *testing.T) {
	// Junk input still produces some outcome, never a panic or an error.
	for _, text := range []string{"????", "12345", "!!", "a"} {
		det := lang.Detect(text)
		assert.NotEmpty(t, det.Code)
	}
}

func TestDetectAllKeepsJoinKeys(t *testing.T) {
	tracks := []data.SearchedTrack{
		{TrackID: "1", TrackName: "Wonderful world of music", ArtistName: "A"},
		{TrackID: "", TrackName: "dropped", ArtistName: "B"},
		{TrackID: "3", TrackName: "", ArtistName: "C"},
	}

	obs := lang.DetectAll(tracks)
	assert.Len(t, obs, 1)
	assert.Equal(t, "1", obs[0].TrackID)
	assert.Equal(t, "Wonderful world of music", obs[0].TrackName)
	assert.Equal(t, "A", obs[0].ArtistName)
	assert.NotEmpty(t, obs[0].Language)
}
