package x11

import (
	"os"
	"testing"

	"github.com/BurntSushi/xgb/randr"

	"github.com/animalstyletaco/Sly2Decomp/internal/graphics"
)

func TestRefreshRate(t *testing.T) {
	cases := []struct {
		name string
		mi   randr.ModeInfo
		want int
	}{
		{
			name: "1080p60",
			mi:   randr.ModeInfo{DotClock: 148500000, Htotal: 2200, Vtotal: 1125},
			want: 60,
		},
		{
			name: "1080p144",
			mi:   randr.ModeInfo{DotClock: 325080000, Htotal: 2080, Vtotal: 1085},
			want: 144,
		},
		{
			name: "zero timings",
			mi:   randr.ModeInfo{DotClock: 148500000},
			want: 0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := refreshRate(tc.mi); got != tc.want {
				t.Errorf("refreshRate() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDispatchTable(t *testing.T) {
	tbl := newDispatchTable()
	w := &Window{id: 42}

	if tbl.lookup(42) != nil {
		t.Fatal("empty table should miss")
	}
	tbl.add(w)
	if tbl.lookup(42) != w {
		t.Fatal("lookup after add should hit")
	}
	tbl.remove(42)
	if tbl.lookup(42) != nil {
		t.Fatal("lookup after remove should miss")
	}
}

func TestBackendWithoutConnection(t *testing.T) {
	b := NewBackend()

	if _, err := b.Screens(); err == nil {
		t.Error("Screens() on an unconnected backend should fail")
	}
	if _, err := b.MakeDisplay(640, 480, "test", true); err == nil {
		t.Error("MakeDisplay() on an unconnected backend should fail")
	}
	if err := b.Render(nil, graphics.RenderOptions{}); err == nil {
		t.Error("Render() on an unconnected backend should fail")
	}
}

// TestConnectLive needs a running X server; skipped everywhere else.
func TestConnectLive(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X server available")
	}

	conn, err := Connect()
	if err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	defer conn.Close()

	screens, err := conn.Screens()
	if err != nil {
		t.Fatalf("Screens() failed: %v", err)
	}
	if len(screens) == 0 {
		t.Fatal("expected at least one screen")
	}
	for _, s := range screens {
		if s.Geometry.Width <= 0 || s.Geometry.Height <= 0 {
			t.Errorf("screen %d has degenerate geometry %+v", s.Index, s.Geometry)
		}
	}
}
