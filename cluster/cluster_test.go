package cluster_test

import (
	"testing"

	"github.com/nkoz/moodcharts/cluster"
	"github.com/nkoz/moodcharts/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two well-separated mood groups: calm acoustic genres and loud energetic
// ones. k-means must put each group in its own cluster.
func separableProfiles() []data.GenreMoodProfile {
	return []data.GenreMoodProfile{
		{Genre: "ambient", Valence: 0.1, Energy: 0.05, Danceability: 0.2, Tempo: 70, Acousticness: 0.95, Instrumentalness: 0.9, Liveness: 0.1, Speechiness: 0.03},
		{Genre: "classical", Valence: 0.15, Energy: 0.1, Danceability: 0.25, Tempo: 75, Acousticness: 0.9, Instrumentalness: 0.85, Liveness: 0.12, Speechiness: 0.04},
		{Genre: "metal", Valence: 0.4, Energy: 0.95, Danceability: 0.5, Tempo: 160, Acousticness: 0.02, Instrumentalness: 0.3, Liveness: 0.3, Speechiness: 0.1},
		{Genre: "punk", Valence: 0.45, Energy: 0.9, Danceability: 0.55, Tempo: 165, Acousticness: 0.03, Instrumentalness: 0.2, Liveness: 0.35, Speechiness: 0.12},
	}
}

func TestFitSeparatesObviousGroups(t *testing.T) {
	model, err := cluster.Fit(separableProfiles(), 2)
	require.NoError(t, err)

	assignments := model.Assignments()
	require.Len(t, assignments, 4)

	byGenre := map[string]data.GenreCluster{}
	for _, a := range assignments {
		byGenre[a.Genre] = a
	}

	assert.Equal(t, byGenre["ambient"].Cluster, byGenre["classical"].Cluster)
	assert.Equal(t, byGenre["metal"].Cluster, byGenre["punk"].Cluster)
	assert.NotEqual(t, byGenre["ambient"].Cluster, byGenre["metal"].Cluster)
}

func TestClusterNamesAreMostFrequentGenre(t *testing.T) {
	model, err := cluster.Fit(separableProfiles(), 2)
	require.NoError(t, err)

	for _, a := range model.Assignments() {
		assert.NotEmpty(t, a.ClusterName)
	}

	// each genre appears once per group, so the tie breaks alphabetically
	byGenre := map[string]string{}
	for _, a := range model.Assignments() {
		byGenre[a.Genre] = a.ClusterName
	}
	assert.Equal(t, "ambient", byGenre["ambient"])
	assert.Equal(t, "ambient", byGenre["classical"])
	assert.Equal(t, "metal", byGenre["metal"])
	assert.Equal(t, "metal", byGenre["punk"])
}

func TestPredictNearestCluster(t *testing.T) {
	model, err := cluster.Fit(separableProfiles(), 2)
	require.NoError(t, err)

	// a quiet acoustic vector lands with the calm genres
	_, name := model.Predict(data.Vector{
		"valence": 0.12, "energy": 0.08, "danceability": 0.22, "tempo": 72,
		"acousticness": 0.92, "instrumentalness": 0.88, "liveness": 0.11, "speechiness": 0.03,
	})
	assert.Equal(t, "ambient", name)

	_, name = model.Predict(data.Vector{
		"valence": 0.42, "energy": 0.93, "danceability": 0.52, "tempo": 162,
		"acousticness": 0.02, "instrumentalness": 0.25, "liveness": 0.32, "speechiness": 0.11,
	})
	assert.Equal(t, "metal", name)
}

func TestFitRejectsTooFewGenres(t *testing.T) {
	_, err := cluster.Fit(separableProfiles(), 5)
	assert.Error(t, err)
}
