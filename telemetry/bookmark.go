package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkKillSpree  BookmarkType = "kill_spree"
	BookmarkSwarm      BookmarkType = "swarm"
	BookmarkShieldWall BookmarkType = "shield_wall"
	BookmarkWardenDown BookmarkType = "warden_down"
	BookmarkGridStorm  BookmarkType = "grid_storm"
)

// Bookmark marks a window worth replaying.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// Thresholds for the window checks.
const (
	minHistory       = 3
	spreeFactor      = 2.0
	spreeMinKills    = 10
	swarmFactor      = 2.0
	swarmMinEnemies  = 15
	shieldWallBlocks = 5
	stormDisplace    = 40.0
)

// BookmarkDetector compares each window against a rolling history.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < minHistory {
		historySize = minHistory
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
// The stats are added to the history afterwards.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if stats.KillsWarden > 0 {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkWardenDown,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Warden destroyed at score %d", stats.Score),
		})
	}
	if stats.Blocks >= shieldWallBlocks && stats.Blocks > stats.Kills {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkShieldWall,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d blocks against %d kills", stats.Blocks, stats.Kills),
		})
	}
	if stats.GridDisplacement > stormDisplace {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkGridStorm,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Grid displaced %.0f units", stats.GridDisplacement),
		})
	}

	if history := bd.getHistory(); len(history) >= minHistory {
		var kills, enemies float64
		for _, h := range history {
			kills += float64(h.Kills)
			enemies += float64(h.Enemies)
		}
		kills /= float64(len(history))
		enemies /= float64(len(history))

		if stats.Kills >= spreeMinKills && float64(stats.Kills) > kills*spreeFactor {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkKillSpree,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%d kills, %.1fx the recent average", stats.Kills, ratio(float64(stats.Kills), kills)),
			})
		}
		if stats.Enemies >= swarmMinEnemies && float64(stats.Enemies) > enemies*swarmFactor {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkSwarm,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%d live enemies, %.1fx the recent average", stats.Enemies, ratio(float64(stats.Enemies), enemies)),
			})
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

// Reset clears the history, e.g. when a new attempt starts.
func (bd *BookmarkDetector) Reset() {
	bd.historyIdx = 0
	bd.historyFull = false
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func ratio(v, avg float64) float64 {
	if avg == 0 {
		return 0
	}
	return v / avg
}
