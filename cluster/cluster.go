// Package cluster groups genre mood profiles by k-means over standardized
// descriptor vectors, and names each group after its most frequent
// constituent genre. A fitted model doubles as a nearest-centroid classifier
// for interactive "which mood cluster is this" lookups; that is a
// convenience cache over the clustering result, not a separate method.
package cluster

import (
	"fmt"
	"math"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/nkoz/moodcharts/data"
	"gonum.org/v1/gonum/stat"
)

const DefaultClusters = 6

type Model struct {
	mean data.Vector
	std  data.Vector

	centroids   []data.Vector
	names       []string
	assignments []data.GenreCluster
}

type genreObservation struct {
	genre  string
	coords clusters.Coordinates
}

func (o genreObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o genreObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Fit standardizes each profile's mood vector to zero mean and unit variance
// per feature, partitions the genres into k groups, and labels each group by
// its most frequent genre (ties broken alphabetically). k defaults to
// DefaultClusters when non-positive.
func Fit(profiles []data.GenreMoodProfile, k int) (*Model, error) {
	if k <= 0 {
		k = DefaultClusters
	}
	if len(profiles) < k {
		return nil, fmt.Errorf("need at least %d genres for %d clusters, have %d", k, k, len(profiles))
	}

	model := &Model{}
	model.mean, model.std = moments(profiles)

	observations := make(clusters.Observations, len(profiles))
	for i := range profiles {
		observations[i] = genreObservation{
			genre:  profiles[i].Genre,
			coords: model.coordinates(profiles[i].MoodVector()),
		}
	}

	km := kmeans.New()
	result, err := km.Partition(observations, k)
	if err != nil {
		return nil, fmt.Errorf("k-means partition error: %w", err)
	}

	assigned := make(map[string]int, len(profiles))
	model.centroids = make([]data.Vector, len(result))
	model.names = make([]string, len(result))
	for i, group := range result {
		model.centroids[i] = model.vector(group.Center)

		counts := map[string]int{}
		for _, obs := range group.Observations {
			genre := obs.(genreObservation).genre
			assigned[genre] = i
			counts[genre]++
		}
		model.names[i] = mostFrequent(counts)
	}

	model.assignments = make([]data.GenreCluster, len(profiles))
	for i, profile := range profiles {
		idx := assigned[profile.Genre]
		model.assignments[i] = data.GenreCluster{
			GenreMoodProfile: profile,
			Cluster:          idx,
			ClusterName:      model.names[idx],
		}
	}

	return model, nil
}

// Assignments returns one row per input genre with its cluster number and
// human-readable cluster name, in input order.
func (m *Model) Assignments() []data.GenreCluster {
	return m.assignments
}

// Predict maps a raw mood-feature vector to its nearest cluster in
// standardized space.
func (m *Model) Predict(raw data.Vector) (int, string) {
	v := m.standardize(raw)
	best, bestDist := 0, math.Inf(1)
	for i, centroid := range m.centroids {
		if d := v.Distance(centroid); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, m.names[best]
}

func (m *Model) standardize(raw data.Vector) data.Vector {
	v := make(data.Vector, len(data.MoodFeatures))
	for _, feature := range data.MoodFeatures {
		v[feature] = (raw[feature] - m.mean[feature]) / m.std[feature]
	}
	return v
}

func (m *Model) coordinates(raw data.Vector) clusters.Coordinates {
	v := m.standardize(raw)
	coords := make(clusters.Coordinates, len(data.MoodFeatures))
	for i, feature := range data.MoodFeatures {
		coords[i] = v[feature]
	}
	return coords
}

func (m *Model) vector(coords clusters.Coordinates) data.Vector {
	v := make(data.Vector, len(data.MoodFeatures))
	for i, feature := range data.MoodFeatures {
		v[feature] = coords[i]
	}
	return v
}

// moments computes the per-feature mean and standard deviation used for
// standardization. A zero or undefined deviation becomes 1 so constant
// features pass through instead of dividing by zero.
func moments(profiles []data.GenreMoodProfile) (mean, std data.Vector) {
	mean = make(data.Vector, len(data.MoodFeatures))
	std = make(data.Vector, len(data.MoodFeatures))

	xs := make([]float64, len(profiles))
	for _, feature := range data.MoodFeatures {
		for i := range profiles {
			xs[i] = profiles[i].MoodVector()[feature]
		}
		m, s := stat.MeanStdDev(xs, nil)
		if s == 0 || math.IsNaN(s) {
			s = 1
		}
		mean[feature] = m
		std[feature] = s
	}
	return mean, std
}

func mostFrequent(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestCount := "", -1
	for _, name := range names {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	return best
}
