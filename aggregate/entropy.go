package aggregate

import (
	"math"
	"sort"

	"github.com/nkoz/moodcharts/data"
	"gonum.org/v1/gonum/stat"
)

// RegionEntropy joins chart entries to language observations by (title,
// artist) name and scores each region's language diversity with Shannon
// entropy in bits: H = -sum p_i * log2(p_i) over the observed language
// proportions. A region with a single language scores exactly 0. Output is
// ranked descending by entropy.
func RegionEntropy(entries []data.ChartEntry, observations []data.LanguageObservation) []data.RegionEntropyStat {
	type key struct {
		title  string
		artist string
	}
	languages := make(map[key]string, len(observations))
	for _, obs := range observations {
		if obs.Language == "" {
			continue
		}
		languages[key{obs.TrackName, obs.ArtistName}] = obs.Language
	}

	langCounts := map[string]map[string]int64{}
	totals := map[string]int64{}
	for _, entry := range entries {
		if entry.Region == "" {
			continue
		}
		language, ok := languages[key{entry.TrackName, entry.ArtistName}]
		if !ok {
			continue
		}
		if langCounts[entry.Region] == nil {
			langCounts[entry.Region] = map[string]int64{}
		}
		langCounts[entry.Region][language]++
		totals[entry.Region]++
	}

	out := make([]data.RegionEntropyStat, 0, len(langCounts))
	for region, counts := range langCounts {
		out = append(out, data.RegionEntropyStat{
			Region:          region,
			EntropyScore:    Entropy(counts),
			TotalTracks:     totals[region],
			UniqueLanguages: int64(len(counts)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EntropyScore != out[j].EntropyScore {
			return out[i].EntropyScore > out[j].EntropyScore
		}
		return out[i].Region < out[j].Region
	})
	return out
}

// Entropy computes Shannon entropy in bits over the empirical distribution
// behind a count table. Entropy is non-negative; a single category yields 0
// without ever evaluating log(0).
func Entropy(counts map[string]int64) float64 {
	var total int64
	for _, count := range counts {
		total += count
	}
	if total == 0 {
		return 0
	}

	proportions := make([]float64, 0, len(counts))
	for _, count := range counts {
		if count == 0 {
			continue
		}
		proportions = append(proportions, float64(count)/float64(total))
	}

	// stat.Entropy works in nats; convert to bits.
	return stat.Entropy(proportions) / math.Ln2
}
