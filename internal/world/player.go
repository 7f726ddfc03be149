package world

import (
	"slices"
	"time"
)

// Player is the controlled character. Accessed only from the game loop.
type Player struct {
	Name string
	X, Y float64

	// Speed is the base movement speed in pixels per baseline frame. Level-ups
	// and legacy bonuses add to it. SpeedBoost is the product of active
	// ability multipliers and is 1 when none is running.
	Speed      float64
	SpeedBoost float64

	Level         int
	XP            int
	XPToNextLevel int
	BaseLevel     int

	MemoriesFound []string // append-only, unique
	Unlocked      []string // unlocked ability names, append-only, unique

	Inventory *Inventory
	Guild     Guild
	Legacy    *Legacy

	Blinking   bool
	BlinkTimer time.Duration
}

// EffectiveSpeed is the speed before any alignment multiplier.
func (p *Player) EffectiveSpeed() float64 { return p.Speed * p.SpeedBoost }

// Bounds is the sprite rectangle.
func (p *Player) Bounds() Rect { return Rect{X: p.X, Y: p.Y, W: SpriteSize, H: SpriteSize} }

// Hitbox is the smaller collision box centred inside the sprite.
func (p *Player) Hitbox() Rect {
	off := (SpriteSize - HitboxSize) / 2
	return Rect{X: p.X + off, Y: p.Y + off, W: HitboxSize, H: HitboxSize}
}

func (p *Player) Center() (float64, float64) { return p.Bounds().Center() }

func (p *Player) HasAbility(name string) bool { return slices.Contains(p.Unlocked, name) }

// Guild is the player's faction. The roster holds at most Level+1 members.
type Guild struct {
	Name          string
	Level         int
	XP            int
	XPToNextLevel int
	Reputation    int
	Members       []string
}

func (g *Guild) HasMember(name string) bool { return slices.Contains(g.Members, name) }

func (g *Guild) Full() bool { return len(g.Members) >= g.Level+1 }

// Legacy is the persisted New-Game+ bonus record.
type Legacy struct {
	UniqueSkill  string `json:"uniqueSkill"`
	StartingItem string `json:"startingItem"`
	BonusStat    string `json:"bonusStat"`
}

// Empty reports whether none of the three tags is set, as decoded from
// null or {}.
func (l *Legacy) Empty() bool {
	return l.UniqueSkill == "" && l.StartingItem == "" && l.BonusStat == ""
}

// Legacy tags with a gameplay effect.
const (
	LegacySkillMasterCrafter = "Master Crafter"
	LegacyItemAncientCompass = "Ancient Compass"
	LegacyStatSpeed          = "speed"
)

// HasSkill reports whether l grants the given unique skill. Nil-safe.
func (l *Legacy) HasSkill(skill string) bool { return l != nil && l.UniqueSkill == skill }
