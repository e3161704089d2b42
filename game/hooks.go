package game

// Cue identifies a sound effect requested by the core.
type Cue uint8

const (
	CueDash Cue = iota
	CueKill
	CueError
	CueTierUp
	CueExplode
	CueNova
	CueDeflect
	CueShoot
	CueSlowDown
	CueBossWarning
	CueGameOver
	CueVictory
	NumCues
)

var cueNames = [NumCues]string{
	"dash", "kill", "error", "tier_up", "explode", "nova",
	"deflect", "shoot", "slow_down", "boss_warning", "game_over", "victory",
}

// String returns the snake_case name of the cue.
func (c Cue) String() string {
	if c >= NumCues {
		return "unknown"
	}
	return cueNames[c]
}

// Audio plays cues. Intensity is usually the current combo.
type Audio interface {
	Play(cue Cue, intensity float64)
}

// Status is the value the HUD shows.
type Status struct {
	Score         int
	HighScore     int
	Combo         int
	Tier          int
	Ram           int
	MaxRam        int
	Overheat      float64
	NukeCharge    float64
	Attempt       int
	State         State
	Reason        string
	WardensKilled int
	BossWarning   bool
	RitualActive  bool
	NextStar      int
}

// UI receives status refreshes whenever something visible changes.
type UI interface {
	Refresh(s Status)
}

// Store persists the attempt counter and the high score.
type Store interface {
	IncrementAttempts() (int, error)
	HighScore() (int, error)
	SaveHighScore(score int) (bool, error)
}

// Renderer draws one frame from a read-only snapshot.
type Renderer interface {
	Draw(s *Snapshot)
}

type nopAudio struct{}

func (nopAudio) Play(Cue, float64) {}

type nopUI struct{}

func (nopUI) Refresh(Status) {}

type nopRenderer struct{}

func (nopRenderer) Draw(*Snapshot) {}
