package systems

import (
	"math/rand"
	"testing"
)

func TestParticleCount(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		max     int
		divisor float64
		want    int
	}{
		{"full hd capped", 1920, 1080, 50, 20000, 50},
		{"small viewport", 400, 300, 50, 20000, 6},
		{"below one", 100, 100, 50, 20000, 0},
		{"zero width", 0, 1080, 50, 20000, 0},
		{"zero height", 1920, 0, 50, 20000, 0},
		{"zero divisor", 1920, 1080, 50, 0, 0},
		{"zero cap", 1920, 1080, 0, 20000, 0},
		{"exact cap", 1000, 1000, 50, 20000, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParticleCount(tt.w, tt.h, tt.max, tt.divisor); got != tt.want {
				t.Errorf("ParticleCount(%v, %v) = %d, want %d", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestSampleParticleRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := SpawnParams{Drift: 0.25, RadiusMin: 1, RadiusMax: 3, OpacityMin: 0.1, OpacityMax: 0.6, PaletteSize: 4}

	seen := make(map[uint8]bool)
	for i := 0; i < 1000; i++ {
		pos, vel, app := SampleParticle(rng, 640, 480, p)
		if pos.X < 0 || pos.X >= 640 || pos.Y < 0 || pos.Y >= 480 {
			t.Fatalf("position out of viewport: %+v", pos)
		}
		if vel.X < -0.25 || vel.X >= 0.25 || vel.Y < -0.25 || vel.Y >= 0.25 {
			t.Fatalf("velocity out of drift range: %+v", vel)
		}
		if app.Radius < 1 || app.Radius >= 3 {
			t.Fatalf("radius out of range: %v", app.Radius)
		}
		if app.Opacity < 0.1 || app.Opacity >= 0.6 {
			t.Fatalf("opacity out of range: %v", app.Opacity)
		}
		if int(app.Color) >= p.PaletteSize {
			t.Fatalf("color index %d out of palette", app.Color)
		}
		seen[app.Color] = true
	}
	if len(seen) != p.PaletteSize {
		t.Errorf("only %d of %d palette entries sampled", len(seen), p.PaletteSize)
	}
}

func TestSampleParticleDeterministic(t *testing.T) {
	p := SpawnParams{Drift: 1, RadiusMin: 1, RadiusMax: 2, OpacityMin: 0, OpacityMax: 1, PaletteSize: 3}
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		pa, va, aa := SampleParticle(a, 100, 100, p)
		pb, vb, ab := SampleParticle(b, 100, 100, p)
		if pa != pb || va != vb || aa != ab {
			t.Fatalf("sample %d differs for the same seed", i)
		}
	}
}
