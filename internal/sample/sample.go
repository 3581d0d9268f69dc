// Package sample draws a balanced subset from a graded corpus: at most N
// sentences per level, chosen with a seeded shuffle so runs are
// reproducible.
package sample

import (
	"math/rand"
	"sort"

	"github.com/lexsift/lexsift/internal/cefr"
	"github.com/lexsift/lexsift/internal/corpus"
)

// DefaultPerLevel is the per-level draw size when none is given.
const DefaultPerLevel = 200

// DefaultSeed keeps repeated runs over the same corpus identical.
const DefaultSeed = 42

// PerLevel draws up to n sentences for each known level. Levels with fewer
// than n sentences contribute everything they have. The result is ordered
// by level, then by the shuffled draw order within a level. Unknown-level
// sentences are skipped.
func PerLevel(graded []corpus.Graded, n int, seed int64) []corpus.Graded {
	if n <= 0 {
		return nil
	}

	byLevel := make(map[cefr.Level][]corpus.Graded)
	for _, g := range graded {
		if !g.Level.Known() {
			continue
		}
		byLevel[g.Level] = append(byLevel[g.Level], g)
	}

	rng := rand.New(rand.NewSource(seed))
	var out []corpus.Graded
	for _, level := range cefr.All {
		bucket := byLevel[level]
		rng.Shuffle(len(bucket), func(i, j int) {
			bucket[i], bucket[j] = bucket[j], bucket[i]
		})
		if len(bucket) > n {
			bucket = bucket[:n]
		}
		out = append(out, bucket...)
	}
	return out
}

// Distribution counts graded sentences per level. The returned slice is
// ordered A1 through C2; unknown levels are folded into the final Unknown
// count.
type LevelCount struct {
	Level cefr.Level
	Count int
}

func Distribution(graded []corpus.Graded) ([]LevelCount, int) {
	counts := make(map[cefr.Level]int)
	unknown := 0
	for _, g := range graded {
		if !g.Level.Known() {
			unknown++
			continue
		}
		counts[g.Level]++
	}

	out := make([]LevelCount, 0, len(cefr.All))
	for _, level := range cefr.All {
		out = append(out, LevelCount{Level: level, Count: counts[level]})
	}
	return out, unknown
}

// Scarcest returns the known levels ordered by ascending count, for
// reporting which levels need more source material.
func Scarcest(graded []corpus.Graded) []LevelCount {
	dist, _ := Distribution(graded)
	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Count < dist[j].Count
	})
	return dist
}
