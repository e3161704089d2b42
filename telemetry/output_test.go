package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/warpdash/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// Nil manager swallows writes.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteRun(RunRecord{}); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should report no dir and close cleanly")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int32(i * 600), Kills: i}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteRun(RunRecord{Attempt: 1, Outcome: OutcomeGameOver, Reason: "DATA MINE", Score: 700}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkWardenDown, Tick: 900}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var windows []WindowStats
	if err := gocsv.UnmarshalFile(f, &windows); err != nil {
		t.Fatal(err)
	}
	if len(windows) != 3 || windows[2].Kills != 3 || windows[1].WindowEndTick != 1200 {
		t.Errorf("read back %+v", windows)
	}

	rf, err := os.Open(filepath.Join(dir, "runs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer rf.Close()
	var runs []RunRecord
	if err := gocsv.UnmarshalFile(rf, &runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Reason != "DATA MINE" || runs[0].Score != 700 {
		t.Errorf("runs = %+v", runs)
	}

	for _, name := range []string{"config.yaml", "perf.csv", "bookmarks.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}
