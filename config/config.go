// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
// Durations are in ticks (1/60 s) unless noted otherwise.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Player    PlayerConfig    `yaml:"player"`
	Dash      DashConfig      `yaml:"dash"`
	Combo     ComboConfig     `yaml:"combo"`
	Grid      GridConfig      `yaml:"grid"`
	Enemies   EnemiesConfig   `yaml:"enemies"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Kill      KillConfig      `yaml:"kill"`
	Boss      BossConfig      `yaml:"boss"`
	Ritual    RitualConfig    `yaml:"ritual"`
	Nova      NovaConfig      `yaml:"nova"`
	Nuke      NukeConfig      `yaml:"nuke"`
	Particles ParticlesConfig `yaml:"particles"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Audio     AudioConfig     `yaml:"audio"`
	Autopilot AutopilotConfig `yaml:"autopilot"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display and frame settings.
type ScreenConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	TargetFPS  int     `yaml:"target_fps"`
	MaxFrameDT float64 `yaml:"max_frame_dt"` // Seconds; larger frame deltas are clamped
}

// PlayerConfig holds player node parameters.
type PlayerConfig struct {
	Radius        float64 `yaml:"radius"`
	MaxRam        int     `yaml:"max_ram"`         // Dash charges
	Drag          float64 `yaml:"drag"`            // Velocity multiplier per tick (applied as drag^dt)
	SafeDistance  float64 `yaml:"safe_distance"`   // Spawns closer than this to the player are rejected
	AimExclusion  float64 `yaml:"aim_exclusion"`   // Spawns closer than this to the aimed endpoint are rejected
	AimTimeScale  float64 `yaml:"aim_time_scale"`  // Target time scale while aiming
	TimeScaleEase float64 `yaml:"time_scale_ease"` // Fraction of the gap closed per tick
}

// DashConfig holds dash and slash line parameters.
type DashConfig struct {
	Range             float64 `yaml:"range"`
	TierRangeMult     float64 `yaml:"tier_range_mult"` // Range multiplier at the top tier
	ResidualSpeed     float64 `yaml:"residual_speed"`  // Player speed along the dash direction after landing
	LineLife          float64 `yaml:"line_life"`
	EchoLifeBonus     float64 `yaml:"echo_life_bonus"` // Extra line life at tier >= 1
	LineWidth         float64 `yaml:"line_width"`
	LineWidthDecay    float64 `yaml:"line_width_decay"`
	LethalMinLife     float64 `yaml:"lethal_min_life"` // Echo lines kill only while life exceeds this
	EchoPull          float64 `yaml:"echo_pull"`       // Fraction pulled toward the line midpoint
	GridRadius        float64 `yaml:"grid_radius"`
	GridForce         float64 `yaml:"grid_force"`
	Shake             float64 `yaml:"shake"`
	ShakePerHit       float64 `yaml:"shake_per_hit"`
	MissOverheat      float64 `yaml:"miss_overheat"`       // Overheat when the last charge is spent on a miss
	MineOverheat      float64 `yaml:"mine_overheat"`       // Overheat when dashing into a mine below tier 2
	WrongNodeOverheat float64 `yaml:"wrong_node_overheat"` // Overheat when hitting a star node out of order
	BlockThrottle     float64 `yaml:"block_throttle"`      // Minimum frames between echo deflect cues per enemy
}

// ComboConfig holds combo and tier parameters.
type ComboConfig struct {
	Window          float64 `yaml:"window"`           // comboTimer reset value on hit
	TierThresholds  []int   `yaml:"tier_thresholds"`  // Combo needed for tiers 1..n
	DensityCombo    int     `yaml:"density_combo"`    // Combo above this uses the high density multiplier
	DensityLow      float64 `yaml:"density_low"`
	DensityHigh     float64 `yaml:"density_high"`
	DistortionCombo float64 `yaml:"distortion_combo"` // Combo at which grid distortion reaches level 1
}

// GridConfig holds warp grid parameters.
type GridConfig struct {
	Spacing            float64 `yaml:"spacing"`
	Spring             float64 `yaml:"spring"`
	Damping            float64 `yaml:"damping"`
	DistortionBase     float64 `yaml:"distortion_base"`      // k at level 0
	DistortionPerLevel float64 `yaml:"distortion_per_level"` // k added per unit level
	AimForce           float64 `yaml:"aim_force"`            // Pull applied around the player while aiming
}

// KindConfig holds the common per-kind enemy parameters.
type KindConfig struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
	Score  int     `yaml:"score"` // Base score, multiplied by max(1, combo)
}

// ShooterConfig holds shooter parameters.
type ShooterConfig struct {
	KindConfig    `yaml:",inline"`
	FireIntervals []float64 `yaml:"fire_intervals"` // Interval used at each encounter step
	EncounterStep []int     `yaml:"encounter_step"` // Encounters above step[i] use interval[i+1]
	FirstShot     float64   `yaml:"first_shot"`
}

// PhantomConfig holds phantom parameters.
type PhantomConfig struct {
	KindConfig     `yaml:",inline"`
	PhaseSpeed     float64 `yaml:"phase_speed"`
	MinOpacity     float64 `yaml:"min_opacity"`
	ContactOpacity float64 `yaml:"contact_opacity"` // Harmless to touch below this
	DashOpacity    float64 `yaml:"dash_opacity"`    // Dashes pass through below this
}

// SingularityConfig holds singularity parameters.
type SingularityConfig struct {
	KindConfig  `yaml:",inline"`
	Warmup      float64 `yaml:"warmup"`
	PullRadius  float64 `yaml:"pull_radius"`
	Pull        float64 `yaml:"pull"`
	Drift       float64 `yaml:"drift"`
	Damping     float64 `yaml:"damping"`
	GridForce   float64 `yaml:"grid_force"`
	HitCooldown float64 `yaml:"hit_cooldown"` // Deflect cue throttle once immune
}

// GlitchConfig holds glitch parameters.
type GlitchConfig struct {
	KindConfig `yaml:",inline"`
	Lives      int     `yaml:"lives"`
	Invuln     float64 `yaml:"invuln"`
	Stun       float64 `yaml:"stun"`
}

// JousterConfig holds jouster parameters.
type JousterConfig struct {
	KindConfig     `yaml:",inline"`
	TrackTicks     float64 `yaml:"track_ticks"`
	TelegraphTicks float64 `yaml:"telegraph_ticks"`
	DashTicks      float64 `yaml:"dash_ticks"`
	DashSpeed      float64 `yaml:"dash_speed"`
}

// ShieldedConfig holds parameters for basic enemies carrying a shield.
type ShieldedConfig struct {
	KindConfig `yaml:",inline"`
	DashArc    float64 `yaml:"dash_arc"`  // Half-width in units of pi against dashes and echo lines
	BlastArc   float64 `yaml:"blast_arc"` // Half-width in units of pi against explosions
	TurnRate   float64 `yaml:"turn_rate"` // Max shield rotation per tick
}

// WardenConfig holds boss parameters.
type WardenConfig struct {
	KindConfig     `yaml:",inline"`
	SpeedPerWarden float64 `yaml:"speed_per_warden"`
	Shields        []int   `yaml:"shields"`      // Shield count indexed by shield_steps
	ShieldSteps    []int   `yaml:"shield_steps"` // Wardens killed needed for shields[i]
	ShieldArc      float64 `yaml:"shield_arc"`   // Arc width in units of pi
	ShieldSpin     float64 `yaml:"shield_spin"`  // Radians per tick, alternating direction
	FirstShot      float64 `yaml:"first_shot"`
	ShootInterval  float64 `yaml:"shoot_interval"`
	VolleyBase     int     `yaml:"volley_base"` // Volley size doubles per encounter after the first
}

// ProjectileConfig holds projectile parameters.
type ProjectileConfig struct {
	Speed  float64 `yaml:"speed"`
	Radius float64 `yaml:"radius"`
	Life   float64 `yaml:"life"`
}

// TrackingConfig holds homing projectile parameters.
type TrackingConfig struct {
	ProjectileConfig `yaml:",inline"`
	Homing           float64 `yaml:"homing"`
	Spread           float64 `yaml:"spread"` // Spawn position jitter
	VelocityJitter   float64 `yaml:"velocity_jitter"`
}

// TeleportConfig holds glitch relocation parameters.
type TeleportConfig struct {
	Attempts      int     `yaml:"attempts"`
	Range         float64 `yaml:"range"`
	Margin        float64 `yaml:"margin"`
	MinPlayerDist float64 `yaml:"min_player_dist"`
	MinMove       float64 `yaml:"min_move"`
	Fallback      float64 `yaml:"fallback"` // Distance from the player along the escape direction
}

// EnemiesConfig holds per-kind enemy parameters.
type EnemiesConfig struct {
	Steering       float64           `yaml:"steering"`         // Velocity smoothing per tick
	SpeedPerWarden float64           `yaml:"speed_per_warden"` // Global speed multiplier added per warden killed
	Basic          KindConfig        `yaml:"basic"`
	Shooter        ShooterConfig     `yaml:"shooter"`
	Phantom        PhantomConfig     `yaml:"phantom"`
	Singularity    SingularityConfig `yaml:"singularity"`
	Glitch         GlitchConfig      `yaml:"glitch"`
	Jouster        JousterConfig     `yaml:"jouster"`
	Shielded       ShieldedConfig    `yaml:"shielded"`
	Warden         WardenConfig      `yaml:"warden"`
	Mine           KindConfig        `yaml:"mine"`
	Projectile     ProjectileConfig  `yaml:"projectile"`
	Tracking       TrackingConfig    `yaml:"tracking"`
	Teleport       TeleportConfig    `yaml:"teleport"`
}

// SpeciesConfig describes one spawn scheduler entry.
//
//	cap  = (cap_base + score/cap_score_div) * density, at least live_enemies * cap_enemy_frac
//	rate = max(rate_min, rate - score/rate_score_div)
type SpeciesConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Rate         float64 `yaml:"rate"`           // Ticks between spawns while under cap
	RateScoreDiv float64 `yaml:"rate_score_div"` // 0 = fixed rate
	RateMin      float64 `yaml:"rate_min"`
	CapBase      float64 `yaml:"cap_base"`
	CapScoreDiv  float64 `yaml:"cap_score_div"`  // 0 = no score term
	CapScoreStep bool    `yaml:"cap_score_step"` // Floor the score term
	CapEnemyFrac float64 `yaml:"cap_enemy_frac"` // 0 = no enemy term
	Density      bool    `yaml:"density"`        // Multiply the cap by the density multiplier
	MinWardens   int     `yaml:"min_wardens"`    // Gate: wardens killed >= this
	MinScore     float64 `yaml:"min_score"`      // Gate: score > this (0 = no gate)
}

// SpawnConfig holds spawn queue and scheduler parameters.
type SpawnConfig struct {
	Initial           int     `yaml:"initial"` // Spawns queued on start
	QueueAttempts     int     `yaml:"queue_attempts"`
	QueueTimer        float64 `yaml:"queue_timer"`
	PulseInterval     int     `yaml:"pulse_interval"`
	PulseRadius       float64 `yaml:"pulse_radius"`
	PulseForce        float64 `yaml:"pulse_force"`
	MaterializeRadius float64 `yaml:"materialize_radius"`
	MaterializeForce  float64 `yaml:"materialize_force"`

	Basic       SpeciesConfig `yaml:"basic"`
	Shooter     SpeciesConfig `yaml:"shooter"`
	Phantom     SpeciesConfig `yaml:"phantom"`
	Singularity SpeciesConfig `yaml:"singularity"`
	Glitch      SpeciesConfig `yaml:"glitch"`
	Shielded    SpeciesConfig `yaml:"shielded"`
	Mines       SpeciesConfig `yaml:"mines"`
	Jouster     SpeciesConfig `yaml:"jouster"`
}

// KillConfig holds kill side-effect parameters.
type KillConfig struct {
	StunRadius      float64 `yaml:"stun_radius"` // Shielded enemies near a kill lose their shield facing
	StunTicks       float64 `yaml:"stun_ticks"`
	ClearRadius     float64 `yaml:"clear_radius"` // Projectiles near a kill are destroyed
	GridRadius      float64 `yaml:"grid_radius"`
	GridForce       float64 `yaml:"grid_force"`
	ShockwaveRadius float64 `yaml:"shockwave_radius"`
	ShockwaveLife   float64 `yaml:"shockwave_life"`
	ShockwaveWidth  float64 `yaml:"shockwave_width"`
	Confetti        int     `yaml:"confetti"`
	MineShake       float64 `yaml:"mine_shake"`
	MineGridRadius  float64 `yaml:"mine_grid_radius"` // Grid kick when a mine is triggered below tier 2
	MineGridForce   float64 `yaml:"mine_grid_force"`
	ExplosionLife   float64 `yaml:"explosion_life"`
	ExplosionWidth  float64 `yaml:"explosion_width"`
}

// BossConfig holds warden encounter sequencing.
type BossConfig struct {
	FirstKills       int     `yaml:"first_kills"`        // Kills before the first warden
	KillGapBase      int     `yaml:"kill_gap_base"`      // Kills between wardens
	KillGapPerWarden int     `yaml:"kill_gap_per_warden"`
	WarningTicks     float64 `yaml:"warning_ticks"`
	SpawnAttempts    int     `yaml:"spawn_attempts"`
	WarningRadius    float64 `yaml:"warning_radius"`
	WarningForce     float64 `yaml:"warning_force"`
	Confetti         int     `yaml:"confetti"`
	NovaIntensity    float64 `yaml:"nova_intensity"`
}

// RitualConfig holds final encounter parameters.
type RitualConfig struct {
	WardensNeeded  int     `yaml:"wardens_needed"`
	Radius         float64 `yaml:"radius"` // Star node ring radius around the center
	NodeRadius     float64 `yaml:"node_radius"`
	MinZone        float64 `yaml:"min_zone"`
	ShrinkRate     float64 `yaml:"shrink_rate"`
	ScoreDecay     float64 `yaml:"score_decay"` // Points per second of scaled time
	GridRadius     float64 `yaml:"grid_radius"`
	GridForce      float64 `yaml:"grid_force"`
	ShakeBase      float64 `yaml:"shake_base"`
	NodeGridRadius float64 `yaml:"node_grid_radius"`
	NodeGridForce  float64 `yaml:"node_grid_force"`
	NodeExplosion  float64 `yaml:"node_explosion"`
	WrongShake     float64 `yaml:"wrong_shake"`
}

// NovaConfig holds prism nova parameters.
type NovaConfig struct {
	MinHits         int     `yaml:"min_hits"` // Hits in one dash that trigger a nova
	Range           float64 `yaml:"range"`
	Push            float64 `yaml:"push"`
	Stun            float64 `yaml:"stun"`
	GridForce       float64 `yaml:"grid_force"`
	ShockwaveRadius float64 `yaml:"shockwave_radius"`
	ShockwaveLife   float64 `yaml:"shockwave_life"`
	ShockwaveWidth  float64 `yaml:"shockwave_width"`
}

// NukeConfig holds charged explosion parameters.
type NukeConfig struct {
	MinCharge      float64 `yaml:"min_charge"`
	Radius         float64 `yaml:"radius"`          // Radius at full charge
	ChargeRate     float64 `yaml:"charge_rate"`     // Charge per second while the pointer is up
	TopChargeRate  float64 `yaml:"top_charge_rate"` // Charge rate at the top tier
	GridForce      float64 `yaml:"grid_force"`
	MineRadius     float64 `yaml:"mine_radius"` // Explosion radius of a detonated mine
	MineGridRadius float64 `yaml:"mine_grid_radius"`
}

// ParticlesConfig holds particle and floating text parameters.
type ParticlesConfig struct {
	Capacity           int     `yaml:"capacity"` // Initial pool size
	ConfettiSpeedMin   float64 `yaml:"confetti_speed_min"`
	ConfettiSpeedMax   float64 `yaml:"confetti_speed_max"`
	ConfettiLifeMin    float64 `yaml:"confetti_life_min"`
	ConfettiLifeMax    float64 `yaml:"confetti_life_max"`
	ConfettiDrag       float64 `yaml:"confetti_drag"`
	GhostLife          float64 `yaml:"ghost_life"`
	TeleportLineLife   float64 `yaml:"teleport_line_life"`
	TextLife           float64 `yaml:"text_life"`
	TextRise           float64 `yaml:"text_rise"`
	VictoryBurstChance float64 `yaml:"victory_burst_chance"` // Per frame
	VictoryConfetti    int     `yaml:"victory_confetti"`
	VictoryExplosion   float64 `yaml:"victory_explosion"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// AudioConfig holds synthesized audio parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	BufferMS   int     `yaml:"buffer_ms"`
	Volume     float64 `yaml:"volume"` // Linear, 0..1
	MaxVoices  int     `yaml:"max_voices"`
}

// AutopilotConfig holds headless player parameters.
type AutopilotConfig struct {
	Think      float64 `yaml:"think"`       // Ticks between decisions
	AimHold    float64 `yaml:"aim_hold"`    // Ticks the aim is held before release
	MineMargin float64 `yaml:"mine_margin"` // Extra clearance required around mines on the dash line
	MaxTicks   int     `yaml:"max_ticks"`   // Headless run limit
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT             float64 // Seconds per tick at the target frame rate
	ScreenW        float64
	ScreenH        float64
	ScreenW32      float32
	ScreenH32      float32
	CenterX        float64
	CenterY        float64
	SafeDistSq     float64
	AimExclusionSq float64
	TierThresholds []int // Sorted copy of Combo.TierThresholds
	MaxTier        int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would break the simulation outright.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Grid.Spacing <= 0 {
		return fmt.Errorf("grid spacing must be positive, got %v", c.Grid.Spacing)
	}
	if c.Player.MaxRam <= 0 {
		return fmt.Errorf("player max_ram must be positive, got %d", c.Player.MaxRam)
	}
	if len(c.Enemies.Warden.Shields) != len(c.Enemies.Warden.ShieldSteps) {
		return fmt.Errorf("warden shields and shield_steps differ in length (%d vs %d)",
			len(c.Enemies.Warden.Shields), len(c.Enemies.Warden.ShieldSteps))
	}
	if len(c.Enemies.Shooter.FireIntervals) != len(c.Enemies.Shooter.EncounterStep)+1 {
		return fmt.Errorf("shooter needs one more fire interval than encounter steps")
	}
	if tp := c.Enemies.Teleport; tp.Fallback < tp.MinPlayerDist {
		return fmt.Errorf("teleport fallback %v must not be inside min_player_dist %v", tp.Fallback, tp.MinPlayerDist)
	}
	if tp := c.Enemies.Teleport; 2*tp.MinPlayerDist >= math.Hypot(float64(c.Screen.Width)-2*tp.Margin, float64(c.Screen.Height)-2*tp.Margin) {
		return fmt.Errorf("teleport min_player_dist %v leaves no room inside the arena", tp.MinPlayerDist)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float64(fps)
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.CenterX = c.Derived.ScreenW / 2
	c.Derived.CenterY = c.Derived.ScreenH / 2
	c.Derived.SafeDistSq = c.Player.SafeDistance * c.Player.SafeDistance
	c.Derived.AimExclusionSq = c.Player.AimExclusion * c.Player.AimExclusion

	c.Derived.TierThresholds = append([]int(nil), c.Combo.TierThresholds...)
	sort.Ints(c.Derived.TierThresholds)
	c.Derived.MaxTier = len(c.Derived.TierThresholds)
}

// ArcRadians converts an arc expressed in units of pi to radians.
func ArcRadians(units float64) float64 {
	return units * math.Pi
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Clone returns a deep copy with derived values recomputed. Concurrent
// headless runs each mutate their own clone.
func (c *Config) Clone() (*Config, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	out := &Config{}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	out.computeDerived()
	return out, nil
}
