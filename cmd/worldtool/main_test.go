package main

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/logger"
	"github.com/Faultbox/blockworld/internal/stream"
	"github.com/Faultbox/blockworld/internal/world/biome"
	"github.com/Faultbox/blockworld/internal/world/block"
)

func TestStreamSchedule(t *testing.T) {
	tests := []struct {
		name        string
		seconds     float64
		tick        time.Duration
		wantTicks   int
		wantReport  int
		wantFailure bool
	}{
		{"default", 10, 50 * time.Millisecond, 200, 20, false},
		{"one per second", 3, time.Second, 3, 1, false},
		{"slower than a second", 2, 1500 * time.Millisecond, 1, 1, false},
		{"zero tick", 2, 0, 0, 0, true},
		{"negative tick", 2, -time.Second, 0, 0, true},
		{"negative flight", -1, time.Second, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks, every, err := streamSchedule(tt.seconds, tt.tick)
			if (err != nil) != tt.wantFailure {
				t.Fatalf("streamSchedule(%v, %v) error = %v", tt.seconds, tt.tick, err)
			}
			if tt.wantFailure {
				return
			}
			if ticks != tt.wantTicks || every != tt.wantReport {
				t.Errorf("streamSchedule(%v, %v) = %d, %d, want %d, %d",
					tt.seconds, tt.tick, ticks, every, tt.wantTicks, tt.wantReport)
			}
		})
	}
}

func TestStreamWithLongTick(t *testing.T) {
	defer logger.Set(zap.NewNop())
	cmdStream([]string{"-radius", "0", "-workers", "1", "-seconds", "1.5", "-tick", "1500ms"})
}

func TestParseEdit(t *testing.T) {
	tests := []struct {
		in      string
		want    blockEdit
		wantErr bool
	}{
		{"3,90,-4,Glass", blockEdit{3, 90, -4, block.Glass}, false},
		{" 0, 1, 2 , Empty", blockEdit{0, 1, 2, block.Empty}, false},
		{"1,2,3,Wool(Red)", blockEdit{1, 2, 3, block.Wool(block.Red)}, false},
		{"1,2,Glass", blockEdit{}, true},
		{"a,2,3,Glass", blockEdit{}, true},
		{"1,2,3,Cheese", blockEdit{}, true},
	}
	for _, tt := range tests {
		got, err := parseEdit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseEdit(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseEdit(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestQueueEditsWaitsForChunk(t *testing.T) {
	cfg := stream.DefaultConfig()
	cfg.Radius = 0
	cfg.SeaLevel = 2
	s := stream.New(cfg, biome.Flat{Level: 8}, &countingBackend{resident: make(map[uint64]int)})
	defer s.Close()

	edits := []blockEdit{{3, 20, 3, block.Glass}, {500, 20, 500, block.Glass}}
	viewer := mgl32.Vec3{1, 30, 1}
	deadline := time.Now().Add(20 * time.Second)
	for {
		edits = queueEdits(s, edits)
		s.Tick(viewer)
		if got, err := s.Terrain().GetBlockAt(3, 20, 3); err == nil && got == block.Glass {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("edit never applied, stats %+v", s.Stats())
		}
		time.Sleep(2 * time.Millisecond)
	}
	if len(edits) != 1 || edits[0].x != 500 {
		t.Errorf("waiting edits = %+v, want only the one outside the world", edits)
	}
}
