// worldtool is a CLI utility for inspecting generated terrain and meshes
// without a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockworld/internal/engine/mesh"
	"github.com/Faultbox/blockworld/internal/logger"
	"github.com/Faultbox/blockworld/internal/stream"
	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
	"github.com/Faultbox/blockworld/internal/world/chunk"
	"github.com/Faultbox/blockworld/internal/world/gen"
	"github.com/Faultbox/blockworld/internal/world/terrain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "chunk":
		cmdChunk(args)
	case "mesh":
		cmdMesh(args)
	case "inspect":
		cmdInspect(args)
	case "stream":
		cmdStream(args)
	case "zone":
		cmdZone(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`worldtool - terrain and mesh inspection utility

Usage:
  worldtool <command> [options]

Commands:
  chunk   [-seed N] [-sea N] -x X -z Z           Block histogram of one chunk
  mesh    [-seed N] [-sea N] -x X -z Z [-out F]  Mesh stats, optional zstd dump
  inspect <dump.zst>                             Print a mesh dump
  stream  [-seed N] [-radius R] [-seconds S]     Headless streaming run
          [-tick D] [-edit x,y,z,Type]
  zone    [-radius R] -x X -z Z                  Zones around a position

Examples:
  worldtool chunk -seed 7 -x 32 -z -16
  worldtool mesh -x 0 -z 0 -out chunk.zst
  worldtool stream -radius 2 -seconds 10 -speed 40
  worldtool stream -radius 0 -seconds 2 -edit 3,90,3,Glass`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

type worldFlags struct {
	seed *int64
	sea  *int
	x, z *int
}

func addWorldFlags(fs *flag.FlagSet) worldFlags {
	return worldFlags{
		seed: fs.Int64("seed", 1, "World seed"),
		sea:  fs.Int("sea", gen.DefaultSeaLevel, "Sea level"),
		x:    fs.Int("x", 0, "World x inside the chunk"),
		z:    fs.Int("z", 0, "World z inside the chunk"),
	}
}

// neighborhood generates the chunk containing (x, z) together with its four
// lateral neighbors so border faces are meshed as in the client.
func neighborhood(g *gen.Generator, x, z int) (*terrain.Terrain, *chunk.Chunk) {
	tr := terrain.New()
	cx, cz := terrain.Coords(terrain.KeyOf(x, z))
	origins := [][2]int{{cx, cz}, {cx + chunk.Width, cz}, {cx - chunk.Width, cz}, {cx, cz + chunk.Depth}, {cx, cz - chunk.Depth}}
	for _, o := range origins {
		g.Populate(tr.InstantiateChunkAt(o[0], o[1]))
	}
	return tr, tr.ChunkAt(cx, cz)
}

func cmdChunk(args []string) {
	fs := flag.NewFlagSet("chunk", flag.ExitOnError)
	wf := addWorldFlags(fs)
	top := fs.Int("n", 15, "Show the N most common blocks")
	fs.Parse(args)

	g := gen.New(biome.NewNoiseField(*wf.seed), *wf.seed, *wf.sea)
	tr := terrain.New()
	c := tr.InstantiateChunkAt(*wf.x, *wf.z)
	g.Populate(c)

	type blockStat struct {
		t     block.Type
		count int
	}
	counts := make(map[block.Type]int)
	for _, t := range c.Blocks() {
		if t != block.Empty {
			counts[t]++
		}
	}
	stats := make([]blockStat, 0, len(counts))
	for t, n := range counts {
		stats = append(stats, blockStat{t, n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].t < stats[j].t
	})

	ox, oz := c.Origin()
	lx, lz := *wf.x-ox, *wf.z-oz
	fmt.Printf("Chunk:   %v\n", c)
	fmt.Printf("Biome:   %v at (%d, %d)\n", c.Biome(lx, lz).Dominant(), *wf.x, *wf.z)
	fmt.Printf("Types:   %d\n", len(stats))
	fmt.Println()
	for i, s := range stats {
		if i >= *top {
			break
		}
		fmt.Printf("  %-24s %d\n", s.t, s.count)
	}
}

func cmdMesh(args []string) {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	wf := addWorldFlags(fs)
	out := fs.String("out", "", "Write a zstd mesh dump to this file")
	fs.Parse(args)

	g := gen.New(biome.NewNoiseField(*wf.seed), *wf.seed, *wf.sea)
	_, c := neighborhood(g, *wf.x, *wf.z)

	start := time.Now()
	m := mesh.Build(c)
	took := time.Since(start)
	buf := m.Encode()

	fmt.Printf("Chunk:        %v\n", c)
	fmt.Printf("Meshed in:    %v\n", took)
	fmt.Printf("Opaque:       %d quads, %d vertices\n", m.Opaque.Quads(), len(m.Opaque.Vertices))
	fmt.Printf("Transparent:  %d quads, %d vertices\n", m.Transparent.Quads(), len(m.Transparent.Vertices))
	fmt.Printf("Encoded:      %.1f KB\n", float64(buf.Size())/1024)
	fmt.Printf("Bounds:       %v - %v\n", m.Bounds.Min, m.Bounds.Max)

	if *out != "" {
		x, z := c.Origin()
		if err := writeDump(*out, dumpHeader{Seed: *wf.seed, X: x, Z: z}, buf); err != nil {
			fail(err)
		}
		if st, err := os.Stat(*out); err == nil {
			fmt.Printf("Dump:         %s (%.1f KB)\n", *out, float64(st.Size())/1024)
		}
	}
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: worldtool inspect <dump.zst>")
		os.Exit(1)
	}
	hdr, buf, err := readDump(args[0])
	if err != nil {
		fail(err)
	}

	fmt.Printf("Dump:         %s (version %d)\n", args[0], hdr.Version)
	fmt.Printf("Chunk:        chunk(%d,%d) seed %d\n", hdr.X, hdr.Z, hdr.Seed)
	fmt.Printf("Opaque:       %d indices\n", buf.OpaqueCount())
	fmt.Printf("Transparent:  %d indices\n", buf.TransparentCount())
	fmt.Printf("Bounds:       %v - %v\n", buf.Bounds.Min, buf.Bounds.Max)

	if verts := mesh.DecodeVertices(buf.OpaqueVertices); len(verts) > 0 {
		fmt.Printf("First vertex: pos %v normal %v\n", verts[0].Position, verts[0].Normal)
	}
}

// countingBackend stands in for the GPU in headless runs.
type countingBackend struct {
	resident map[uint64]int
	bytes    int
}

func (b *countingBackend) Upload(key uint64, origin mgl32.Vec3, buf mesh.Buffers) {
	b.bytes += buf.Size() - b.resident[key]
	b.resident[key] = buf.Size()
}

func (b *countingBackend) Release(key uint64) {
	b.bytes -= b.resident[key]
	delete(b.resident, key)
}

// streamSchedule returns how many ticks fit in the flight time and how many
// ticks pass between progress reports.
func streamSchedule(seconds float64, tick time.Duration) (ticks, reportEvery int, err error) {
	if tick <= 0 {
		return 0, 0, fmt.Errorf("tick interval must be positive, got %v", tick)
	}
	if seconds < 0 {
		return 0, 0, fmt.Errorf("flight time must not be negative, got %v", seconds)
	}
	ticks = int(seconds / tick.Seconds())
	reportEvery = max(1, int(time.Second/tick))
	return ticks, reportEvery, nil
}

// blockEdit is a queued change parsed from "x,y,z,Type".
type blockEdit struct {
	x, y, z int
	t       block.Type
}

func parseEdit(s string) (blockEdit, error) {
	var e blockEdit
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return e, fmt.Errorf("edit %q: want x,y,z,Type", s)
	}
	coords := make([]int, 3)
	for i, p := range parts[:3] {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return e, fmt.Errorf("edit %q: %w", s, err)
		}
		coords[i] = v
	}
	t, ok := block.ParseType(strings.TrimSpace(parts[3]))
	if !ok {
		return e, fmt.Errorf("edit %q: unknown block type %q", s, parts[3])
	}
	return blockEdit{x: coords[0], y: coords[1], z: coords[2], t: t}, nil
}

// editList collects repeated -edit flags.
type editList []blockEdit

func (l *editList) String() string {
	return fmt.Sprint(*l)
}

func (l *editList) Set(v string) error {
	e, err := parseEdit(v)
	if err != nil {
		return err
	}
	*l = append(*l, e)
	return nil
}

// queueEdits hands edits to the scheduler once their chunk is indexed and
// returns the ones still waiting.
func queueEdits(s *stream.Scheduler, edits []blockEdit) []blockEdit {
	waiting := edits[:0]
	for _, e := range edits {
		if !s.Terrain().HasChunkAt(e.x, e.z) {
			waiting = append(waiting, e)
			continue
		}
		s.EditBlock(e.x, e.y, e.z, e.t)
	}
	return waiting
}

func cmdStream(args []string) {
	fs := flag.NewFlagSet("stream", flag.ExitOnError)
	seed := fs.Int64("seed", 1, "World seed")
	radius := fs.Int("radius", 2, "Streaming radius in zones")
	workers := fs.Int("workers", 4, "Background worker count")
	seconds := fs.Float64("seconds", 10, "Simulated flight time")
	speed := fs.Float64("speed", 24, "Viewer speed in blocks per second")
	tick := fs.Duration("tick", 50*time.Millisecond, "Tick interval")
	debug := fs.Bool("debug", false, "Enable debug logging")
	var edits editList
	fs.Var(&edits, "edit", "Block edit x,y,z,Type applied once its chunk streams in (repeatable)")
	fs.Parse(args)

	ticks, reportEvery, err := streamSchedule(*seconds, *tick)
	if err != nil {
		fail(err)
	}

	level := "info"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fail(err)
	}
	defer logger.Sync()

	cfg := stream.DefaultConfig()
	cfg.Seed = *seed
	cfg.Radius = *radius
	cfg.Workers = *workers

	backend := &countingBackend{resident: make(map[uint64]int)}
	s := stream.New(cfg, biome.NewNoiseField(*seed), backend)
	defer s.Close()

	pending := []blockEdit(edits)
	viewer := mgl32.Vec3{0, 100, 0}
	step := float32(*speed * tick.Seconds())
	start := time.Now()
	for i := 0; i < ticks; i++ {
		pending = queueEdits(s, pending)
		s.Tick(viewer)
		viewer[0] += step
		time.Sleep(*tick)
		if (i+1)%reportEvery == 0 {
			st := s.Stats()
			fmt.Printf("t=%4.1fs x=%6.0f chunks=%5d resident=%4d jobs=%3d uploads=%5d evictions=%5d gpu=%6.1fMB\n",
				float64(i+1)*tick.Seconds(), viewer.X(), st.Chunks, st.Resident, st.ActiveJobs,
				st.Uploads, st.Evictions, float64(backend.bytes)/(1<<20))
		}
	}

	st := s.Stats()
	fmt.Println()
	fmt.Printf("Wall time:   %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("Zones:       %d\n", st.Zones)
	fmt.Printf("Failures:    %d (retries %d)\n", st.Failures, st.Retries)
	fmt.Printf("Edits:       %d applied, %d pending, %d never reached\n",
		len(edits)-len(pending)-st.PendingEdits, st.PendingEdits, len(pending))
}

func cmdZone(args []string) {
	fs := flag.NewFlagSet("zone", flag.ExitOnError)
	x := fs.Int("x", 0, "World x")
	z := fs.Int("z", 0, "World z")
	radius := fs.Int("radius", 1, "Radius in zones")
	fs.Parse(args)

	center := terrain.ZoneOf(*x, *z)
	fmt.Printf("Zone:    %v (key %#016x)\n", center, center.Key())
	fmt.Printf("Chunk:   key %#016x\n", terrain.KeyOf(*x, *z))
	fmt.Println()
	for _, zone := range terrain.Bordering(center, *radius) {
		fmt.Printf("  %v\n", zone)
	}
}
