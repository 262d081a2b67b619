// Package recombine resolves the conduction-band coupling: when a site
// ionizes, its liberated electron recombines at some other currently
// vacant site within a bounded travel radius, chosen by randomized scan
// rather than by nearest-neighbor search (§9 of spec.md: acceptable at
// current scales; a spatial index is a future optimization, not built
// here).
package recombine

import (
	"math/rand"

	"github.com/pthm-cable/stedkmc/sitekind"
	"github.com/pthm-cable/stedkmc/sitetable"
)

// Resolve attempts to repopulate one vacant site, other than origin, reachable
// from (x, y) within radius r. origin is the site that just ionized — it is
// already vacant in the table by the time Resolve runs, but spec.md §1.3
// requires the electron land at some *other* site, so origin is excluded
// from the scan regardless of distance. Pass -1 if there is no site to
// exclude. Resolve enumerates every remaining vacant site, permutes the list
// with rng, and repopulates the first one found within r — the randomized
// tie-break the spec calls for instead of always picking the nearest.
// Returns true if a site was repopulated, false if the electron was lost (no
// reachable vacancy).
func Resolve(t *sitetable.Table, origin int, x, y, r float64, rng *rand.Rand) bool {
	vacant := t.VacantIndices()
	rng.Shuffle(len(vacant), func(i, j int) {
		vacant[i], vacant[j] = vacant[j], vacant[i]
	})

	rSq := r * r
	for _, idx := range vacant {
		if idx == origin {
			continue
		}

		vx, vy := t.Position(idx)
		dx := vx - x
		dy := vy - y
		if dx*dx+dy*dy > rSq {
			continue
		}

		t.SetPopulated(idx, true)
		if t.IsRE(idx) {
			// A conduction-band electron recombining with an ionized RE
			// lands in the excited state; the repump rule (step kernel)
			// covers the alternative valence-band pathway into Ground.
			t.SetREState(idx, uint8(sitekind.Excited))
		}
		return true
	}
	return false
}
