package prefabs

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ConfigSpec is global tuning: internal render resolution, camera, and
// player handling. Loaded from config.yaml.
type ConfigSpec struct {
	Name         string  `yaml:"name"`
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
	WindowScale  int     `yaml:"window_scale"`
	FOVDegrees   float64 `yaml:"fov_degrees"`

	MoveSpeed    float64 `yaml:"move_speed"`
	TurnSpeed    float64 `yaml:"turn_speed"`
	PlayerRadius float64 `yaml:"player_radius"`
	PlayerHealth int     `yaml:"player_health"`

	ShootRange    float64 `yaml:"shoot_range"`
	ShootDamage   int     `yaml:"shoot_damage"`
	ShootCooldown float64 `yaml:"shoot_cooldown"`
	HurtCooldown  float64 `yaml:"hurt_cooldown"`
}

// FOV returns the field of view in radians.
func (c ConfigSpec) FOV() float64 {
	return c.FOVDegrees * math.Pi / 180
}

// LevelSpec describes one level: the cell grid as rows of runes plus enemy
// spawns. The legend maps wall runes to material ids; '.' is empty and 'P'
// is the player spawn.
type LevelSpec struct {
	Name    string           `yaml:"name"`
	Legend  map[string]int   `yaml:"legend"`
	Rows    []string         `yaml:"rows"`
	Enemies []EnemySpawnSpec `yaml:"enemies"`
}

// EnemySpawnSpec places one enemy of a kind, with an optional cyclic patrol
// route. Coordinates are map units; waypoints are [x, y] pairs.
type EnemySpawnSpec struct {
	Kind      string      `yaml:"kind"`
	X         float64     `yaml:"x"`
	Y         float64     `yaml:"y"`
	Waypoints [][]float64 `yaml:"waypoints"`
}

// EnemySpec is per-kind tuning loaded from enemy_<kind>.yaml.
type EnemySpec struct {
	Name   string  `yaml:"name"`
	Health int     `yaml:"health"`
	Radius float64 `yaml:"radius"`

	MoveSpeed    float64 `yaml:"move_speed"`
	DetectRadius float64 `yaml:"detect_radius"`
	AttackRadius float64 `yaml:"attack_radius"`
	ArriveRadius float64 `yaml:"arrive_radius"`

	IdleTime       float64 `yaml:"idle_time"`
	GraceTime      float64 `yaml:"grace_time"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	DespawnTime    float64 `yaml:"despawn_time"`

	ContactDamage    int     `yaml:"contact_damage"`
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileDamage int     `yaml:"projectile_damage"`
	ProjectileRange  float64 `yaml:"projectile_range"`

	// Script names a tengo behavior in prefabs/scripts that replaces the
	// built-in state transitions for this kind.
	Script string `yaml:"script"`

	Texture    int                 `yaml:"texture"`
	Scale      float64             `yaml:"scale"`
	Animations map[string]ClipSpec `yaml:"animations"`
}

// ClipSpec is one animation strip.
type ClipSpec struct {
	Row        int     `yaml:"row"`
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

// LoadSpec loads and unmarshals any spec type from the prefab store.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadConfigSpec() (*ConfigSpec, error) {
	spec, err := LoadSpec[ConfigSpec]("config.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	if name == "" {
		name = "level"
	}
	spec, err := LoadSpec[LevelSpec](name + ".yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadEnemySpec(kind string) (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy_" + kind + ".yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
