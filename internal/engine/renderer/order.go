package renderer

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// backToFront returns the chunks holding transparent geometry ordered from
// the farthest to the nearest bounds centre. Ties break on the key so the
// order is stable across frames.
func backToFront(chunks map[uint64]*chunkMesh, eye mgl32.Vec3) []*chunkMesh {
	type entry struct {
		cm   *chunkMesh
		dist float32
	}
	entries := make([]entry, 0, len(chunks))
	for _, cm := range chunks {
		if cm.transparent.count == 0 {
			continue
		}
		d := cm.bounds.Center().Sub(eye)
		entries = append(entries, entry{cm: cm, dist: d.Dot(d)})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.dist, a.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.cm.key, b.cm.key)
	})

	out := make([]*chunkMesh, len(entries))
	for i, e := range entries {
		out[i] = e.cm
	}
	return out
}
