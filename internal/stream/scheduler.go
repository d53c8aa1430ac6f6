// Package stream decides which parts of the world are resident and drives
// block-data and mesh-data generation on a background worker pool.
//
// The Scheduler and the world index it owns belong to one goroutine, the
// owner, which calls Tick at a fixed cadence. Workers never touch the index:
// they hand results back over channels that the owner drains without
// blocking.
package stream

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/engine/mesh"
	"github.com/Faultbox/blockworld/internal/logger"
	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
	"github.com/Faultbox/blockworld/internal/world/chunk"
	"github.com/Faultbox/blockworld/internal/world/gen"
	"github.com/Faultbox/blockworld/internal/world/terrain"
)

// Backend receives finished meshes. It is only called from the owner
// goroutine.
type Backend interface {
	// Upload makes the buffers for chunk key drawable, replacing any
	// previous upload for the same key.
	Upload(key uint64, origin mgl32.Vec3, buf mesh.Buffers)
	// Release frees the buffers of chunk key.
	Release(key uint64)
}

// Config tunes the scheduler.
type Config struct {
	Radius       int // zones around the viewer kept resident
	Workers      int // concurrent jobs
	MaxRetries   int // attempts after a failed job before giving up
	ResultBuffer int // capacity of each hand-off channel
	Seed         int64
	SeaLevel     int
}

// DefaultConfig returns the settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		Radius:       3,
		Workers:      4,
		MaxRetries:   3,
		ResultBuffer: 64,
		Seed:         1,
		SeaLevel:     gen.DefaultSeaLevel,
	}
}

type jobKind int

const (
	blockJob jobKind = iota
	meshJob
)

func (k jobKind) String() string {
	if k == blockJob {
		return "block"
	}
	return "mesh"
}

type blockResult struct {
	zone   terrain.Zone
	chunks []*chunk.Chunk
}

type meshResult struct {
	chunk *chunk.Chunk
	buf   mesh.Buffers
}

type failure struct {
	kind jobKind
	zone terrain.Zone
	key  uint64
	err  error
}

type edit struct {
	x, y, z int
	t       block.Type
}

// Stats is a snapshot of scheduler counters.
type Stats struct {
	Chunks       int // indexed chunks
	Zones        int // zones marked generated
	Resident     int // chunks with uploaded meshes
	ActiveJobs   int // submitted jobs not yet finished
	MeshInFlight int
	PendingEdits int
	Uploads      int
	Evictions    int
	Failures     int
	Retries      int
}

// Scheduler streams the world around a moving viewer.
type Scheduler struct {
	cfg     Config
	terrain *terrain.Terrain
	gen     *gen.Generator
	backend Backend
	pool    *Pool
	log     *zap.Logger
	build   func(c *chunk.Chunk) mesh.Buffers

	blockDone chan blockResult
	meshDone  chan meshResult
	failures  chan failure

	current, previous terrain.Zone
	started           bool

	meshInFlight map[uint64]bool
	meshStale    map[uint64]bool
	blockRetries map[uint64]int
	meshRetries  map[uint64]int
	edits        []edit

	resident  int
	uploads   int
	evictions int
	failed    int
	retried   int
}

// New creates a scheduler generating terrain from field and uploading
// meshes to backend.
func New(cfg Config, field biome.Field, backend Backend) *Scheduler {
	def := DefaultConfig()
	if cfg.Radius < 0 {
		cfg.Radius = def.Radius
	}
	if cfg.Workers < 1 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.ResultBuffer < 1 {
		cfg.ResultBuffer = def.ResultBuffer
	}

	log := logger.Named("stream")
	return &Scheduler{
		cfg:          cfg,
		terrain:      terrain.New(),
		gen:          gen.New(field, cfg.Seed, cfg.SeaLevel),
		backend:      backend,
		pool:         NewPool(cfg.Workers, log),
		log:          log,
		build:        buildMesh,
		blockDone:    make(chan blockResult, cfg.ResultBuffer),
		meshDone:     make(chan meshResult, cfg.ResultBuffer),
		failures:     make(chan failure, cfg.ResultBuffer),
		meshInFlight: make(map[uint64]bool),
		meshStale:    make(map[uint64]bool),
		blockRetries: make(map[uint64]int),
		meshRetries:  make(map[uint64]int),
	}
}

func buildMesh(c *chunk.Chunk) mesh.Buffers {
	return mesh.Build(c).Encode()
}

// Terrain returns the world index. Owner goroutine only.
func (s *Scheduler) Terrain() *terrain.Terrain {
	return s.terrain
}

// Close stops the worker pool. Results not yet drained are dropped.
func (s *Scheduler) Close() {
	s.pool.Close()
}

// Stats returns the current counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Chunks:       s.terrain.Len(),
		Zones:        s.terrain.ZoneCount(),
		Resident:     s.resident,
		ActiveJobs:   s.pool.Active(),
		MeshInFlight: len(s.meshInFlight),
		PendingEdits: len(s.edits),
		Uploads:      s.uploads,
		Evictions:    s.evictions,
		Failures:     s.failed,
		Retries:      s.retried,
	}
}

// Tick advances streaming for a viewer at position viewer. It never waits
// for workers; whatever finished since the last tick is applied.
func (s *Scheduler) Tick(viewer mgl32.Vec3) {
	s.current = terrain.ZoneOf(floor(viewer.X()), floor(viewer.Z()))
	if !s.started {
		s.previous = s.current
	}

	s.applyEdits()
	s.schedule()
	s.drainFailures()
	s.drainBlockData()
	s.drainMeshData()

	s.previous = s.current
	s.started = true
}

func floor(v float32) int {
	i := int(v)
	if v < float32(i) {
		i--
	}
	return i
}

// inRange reports whether chunk c lies in a zone within the streaming
// radius of the viewer.
func (s *Scheduler) inRange(c *chunk.Chunk) bool {
	x, z := c.Origin()
	return terrain.ZoneOf(x, z).Within(s.current, s.cfg.Radius)
}

// schedule dispatches work for zones entering the radius and evicts
// meshes of zones leaving it.
func (s *Scheduler) schedule() {
	for _, zone := range terrain.Bordering(s.current, s.cfg.Radius) {
		if !s.terrain.IsZoneGenerated(zone) {
			s.terrain.MarkZoneGenerated(zone)
			s.dispatchBlock(zone)
			continue
		}
		if s.started && zone.Within(s.previous, s.cfg.Radius) {
			continue
		}
		// Re-entered a zone whose block data is already indexed.
		if s.terrain.ZoneIndexed(zone) {
			for _, o := range zone.ChunkOrigins() {
				s.dispatchMesh(s.terrain.ChunkAt(o[0], o[1]))
			}
		}
	}

	if s.current == s.previous {
		return
	}
	for _, zone := range terrain.Bordering(s.previous, s.cfg.Radius) {
		if !zone.Within(s.current, s.cfg.Radius) {
			s.evict(zone)
		}
	}
}

func (s *Scheduler) evict(zone terrain.Zone) {
	released := 0
	for _, o := range zone.ChunkOrigins() {
		c, err := s.terrain.LookupChunk(o[0], o[1])
		if err != nil || !c.GPUResident() {
			continue
		}
		s.backend.Release(c.Key())
		c.MarkEvicted()
		s.resident--
		s.evictions++
		released++
	}
	if released > 0 {
		s.log.Debug("zone evicted", zap.Stringer("zone", zone), zap.Int("chunks", released))
	}
	if s.blockRetries[zone.Key()] > s.cfg.MaxRetries {
		// Abandoned zones get a fresh set of attempts on re-entry.
		s.terrain.UnmarkZone(zone)
		delete(s.blockRetries, zone.Key())
	}
}

func (s *Scheduler) dispatchBlock(zone terrain.Zone) {
	s.log.Debug("dispatch block data", zap.Stringer("zone", zone))
	g := s.gen
	s.pool.Submit(zone.String(), func(ctx context.Context) {
		origins := zone.ChunkOrigins()
		chunks := make([]*chunk.Chunk, 0, len(origins))
		for _, o := range origins {
			c := chunk.New(o[0], o[1])
			g.Populate(c)
			chunks = append(chunks, c)
		}
		select {
		case s.blockDone <- blockResult{zone: zone, chunks: chunks}:
		case <-ctx.Done():
		}
	}, func(err error) {
		s.report(failure{kind: blockJob, zone: zone, key: zone.Key(), err: err})
	})
}

// dispatchMesh starts a mesh job for c unless one is already running, in
// which case c is re-meshed once that job completes.
func (s *Scheduler) dispatchMesh(c *chunk.Chunk) {
	key := c.Key()
	if s.meshInFlight[key] {
		s.meshStale[key] = true
		return
	}
	s.meshInFlight[key] = true
	build := s.build
	s.pool.Submit(c.String(), func(ctx context.Context) {
		buf := build(c)
		select {
		case s.meshDone <- meshResult{chunk: c, buf: buf}:
		case <-ctx.Done():
		}
	}, func(err error) {
		s.report(failure{kind: meshJob, key: key, err: err})
	})
}

func (s *Scheduler) report(f failure) {
	select {
	case s.failures <- f:
	case <-s.pool.Done():
	}
}

func (s *Scheduler) drainFailures() {
	for {
		select {
		case f := <-s.failures:
			s.handleFailure(f)
		default:
			return
		}
	}
}

func (s *Scheduler) handleFailure(f failure) {
	s.failed++
	switch f.kind {
	case blockJob:
		n := s.blockRetries[f.key] + 1
		s.blockRetries[f.key] = n
		if !f.zone.Within(s.current, s.cfg.Radius) {
			// Generated again when it comes back into range.
			s.terrain.UnmarkZone(f.zone)
			delete(s.blockRetries, f.key)
			return
		}
		if n > s.cfg.MaxRetries {
			s.log.Error("giving up on zone", zap.Stringer("zone", f.zone), zap.Int("attempts", n), zap.Error(f.err))
			return
		}
		s.log.Warn("retrying zone", zap.Stringer("zone", f.zone), zap.Int("attempt", n), zap.Error(f.err))
		s.retried++
		s.dispatchBlock(f.zone)

	case meshJob:
		delete(s.meshInFlight, f.key)
		delete(s.meshStale, f.key)
		c := s.terrain.ChunkByKey(f.key)
		if c == nil || !s.inRange(c) {
			delete(s.meshRetries, f.key)
			return
		}
		n := s.meshRetries[f.key] + 1
		s.meshRetries[f.key] = n
		if n > s.cfg.MaxRetries {
			s.log.Error("giving up on chunk mesh", zap.Stringer("chunk", c), zap.Int("attempts", n), zap.Error(f.err))
			return
		}
		s.log.Warn("retrying chunk mesh", zap.Stringer("chunk", c), zap.Int("attempt", n), zap.Error(f.err))
		s.retried++
		s.dispatchMesh(c)
	}
}

// drainBlockData indexes every finished zone, then meshes the new chunks
// together with their already indexed neighbors, whose border faces may
// have changed.
func (s *Scheduler) drainBlockData() {
	remesh := make(map[uint64]*chunk.Chunk)
	for {
		var r blockResult
		select {
		case r = <-s.blockDone:
		default:
			s.dispatchAll(remesh)
			return
		}

		delete(s.blockRetries, r.zone.Key())
		for _, c := range r.chunks {
			if err := s.terrain.Insert(c); err != nil {
				s.log.Warn("dropping generated chunk", zap.Error(err))
				continue
			}
			remesh[c.Key()] = c
			for _, d := range block.Lateral {
				if n := c.Neighbor(d); n != nil {
					remesh[n.Key()] = n
				}
			}
		}
		s.log.Debug("block data indexed", zap.Stringer("zone", r.zone), zap.Int("chunks", len(r.chunks)))
	}
}

// dispatchAll meshes the set in key order, skipping chunks outside the
// radius; they are meshed when their zone comes back into range.
func (s *Scheduler) dispatchAll(set map[uint64]*chunk.Chunk) {
	for _, key := range slices.Sorted(maps.Keys(set)) {
		if c := set[key]; s.inRange(c) {
			s.dispatchMesh(c)
		}
	}
}

func (s *Scheduler) drainMeshData() {
	for {
		var r meshResult
		select {
		case r = <-s.meshDone:
		default:
			return
		}

		c := r.chunk
		key := c.Key()
		delete(s.meshInFlight, key)
		delete(s.meshRetries, key)

		if !s.inRange(c) {
			delete(s.meshStale, key)
			continue
		}
		ox, oz := c.Origin()
		s.backend.Upload(key, mgl32.Vec3{float32(ox), 0, float32(oz)}, r.buf)
		if !c.GPUResident() {
			s.resident++
		}
		c.MarkUploaded()
		s.uploads++

		if s.meshStale[key] {
			delete(s.meshStale, key)
			s.dispatchMesh(c)
		}
	}
}

// EditBlock queues a block change at world (x, y, z). Owner goroutine
// only. The edit is applied at the start of a tick once no mesh job reads
// the affected chunk or its neighbors.
func (s *Scheduler) EditBlock(x, y, z int, t block.Type) {
	s.edits = append(s.edits, edit{x: x, y: y, z: z, t: t})
}

func (s *Scheduler) applyEdits() {
	if len(s.edits) == 0 {
		return
	}
	remesh := make(map[uint64]*chunk.Chunk)
	pending := s.edits[:0]
	for _, e := range s.edits {
		c, err := s.terrain.LookupChunk(e.x, e.z)
		if err != nil {
			s.log.Debug("dropping edit", zap.Error(fmt.Errorf("edit at (%d,%d,%d): %w", e.x, e.y, e.z, err)))
			continue
		}
		if s.busy(c) {
			pending = append(pending, e)
			continue
		}
		if err := s.terrain.SetBlockAt(e.x, e.y, e.z, e.t); err != nil {
			s.log.Warn("edit failed", zap.Error(err))
			continue
		}
		remesh[c.Key()] = c
		ox, oz := c.Origin()
		lx, lz := e.x-ox, e.z-oz
		for _, d := range block.Lateral {
			dx, _, dz := d.Offset()
			if lx+dx < 0 || lx+dx >= chunk.Width || lz+dz < 0 || lz+dz >= chunk.Depth {
				if n := c.Neighbor(d); n != nil {
					remesh[n.Key()] = n
				}
			}
		}
	}
	s.edits = pending
	s.dispatchAll(remesh)
}

// busy reports whether a running mesh job may read c: a job on c itself or
// on one of its neighbors.
func (s *Scheduler) busy(c *chunk.Chunk) bool {
	if s.meshInFlight[c.Key()] {
		return true
	}
	for _, d := range block.Lateral {
		if n := c.Neighbor(d); n != nil && s.meshInFlight[n.Key()] {
			return true
		}
	}
	return false
}
