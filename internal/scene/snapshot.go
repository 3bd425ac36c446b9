package scene

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/tui-kernel/internal/core"
)

// EntityState is the observable state of one entity.
type EntityState struct {
	Name     string
	Tag      string
	Position core.Vector2
	Started  bool
}

// Snapshot captures the scene at the end of a tick. Identity hashes are
// random and therefore left out, so two runs with the same seed and the
// same input produce equal snapshots.
type Snapshot struct {
	Tick     uint64
	Entities []EntityState
}

// Snapshot returns the current state of the scene. Entities are listed in
// spawn order, so the order is part of the hash.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{Tick: s.tick, Entities: make([]EntityState, 0, len(s.entities))}
	for _, e := range s.entities {
		snap.Entities = append(snap.Entities, EntityState{
			Name:     e.Name(),
			Tag:      e.Tag(),
			Position: e.Transform().WorldPosition(),
			Started:  e.Started(),
		})
	}
	return snap
}

// Hash digests the snapshot with xxhash.
func (s Snapshot) Hash() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	buf = strconv.AppendUint(buf, s.Tick, 10)
	_, _ = d.Write(buf)
	for _, e := range s.Entities {
		buf = buf[:0]
		buf = append(buf, '|')
		buf = append(buf, e.Name...)
		buf = append(buf, '/')
		buf = append(buf, e.Tag...)
		buf = append(buf, '@')
		buf = strconv.AppendInt(buf, int64(e.Position.X), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(e.Position.Y), 10)
		buf = strconv.AppendBool(buf, e.Started)
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
