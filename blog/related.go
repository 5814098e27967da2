package blog

import "math/rand/v2"

// RelatedCount is how many related posts a detail page shows.
const RelatedCount = 3

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultShuffler uses the goroutine-safe top-level math/rand/v2 generator.
var DefaultShuffler Shuffler = globalShuffler{}

// Related picks up to n posts other than current, in random order. Each call may
// return a different selection.
func Related(posts []Post, current Post, rng Shuffler, n int) []Post {
	pool := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Slug != current.Slug {
			pool = append(pool, p)
		}
	}
	if rng == nil {
		rng = DefaultShuffler
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
