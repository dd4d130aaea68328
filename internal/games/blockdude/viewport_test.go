package blockdude

import (
	"testing"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
)

func TestViewportFollow(t *testing.T) {
	tests := []struct {
		name         string
		start        core.Coord
		focus        core.Coord
		levelW       int
		levelH       int
		wantX, wantY int
	}{
		{"inside margin", core.C(0, 0), core.C(5, 5), 30, 30, 0, 0},
		{"scroll right", core.C(0, 0), core.C(9, 1), 30, 30, 1, 0},
		{"scroll up", core.C(0, 0), core.C(1, 10), 30, 30, 0, 2},
		{"scroll left", core.C(10, 0), core.C(12, 1), 30, 30, 9, 0},
		{"clamp at right edge", core.C(0, 0), core.C(29, 1), 30, 30, 18, 0},
		{"clamp at origin", core.C(4, 4), core.C(0, 0), 30, 30, 0, 0},
		{"level narrower than window", core.C(0, 0), core.C(7, 3), 8, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(12, 12)
			v.X, v.Y = tt.start.X, tt.start.Y
			v.Follow(tt.focus, tt.levelW, tt.levelH)
			if v.X != tt.wantX || v.Y != tt.wantY {
				t.Errorf("Follow(%v) origin = (%d, %d), want (%d, %d)", tt.focus, v.X, v.Y, tt.wantX, tt.wantY)
			}
			if tt.levelW >= v.W && !v.Contains(tt.focus) {
				t.Errorf("focus %v not visible from (%d, %d)", tt.focus, v.X, v.Y)
			}
		})
	}
}

func TestViewportCenter(t *testing.T) {
	v := NewViewport(12, 12)
	v.Center(core.C(20, 3), 40, 10)
	if v.X != 14 || v.Y != 0 {
		t.Errorf("Center origin = (%d, %d), want (14, 0)", v.X, v.Y)
	}

	cols, rows := v.Visible(40, 10)
	if cols != 12 || rows != 10 {
		t.Errorf("Visible = %dx%d, want 12x10", cols, rows)
	}
}

func TestViewportSmallWindowMargin(t *testing.T) {
	v := NewViewport(4, 4)
	v.Follow(core.C(3, 0), 20, 20)
	if !v.Contains(core.C(3, 0)) {
		t.Errorf("focus not visible with shrunk margin, origin (%d, %d)", v.X, v.Y)
	}
}
