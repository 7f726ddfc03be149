package world

import "time"

// Player geometry and progression baselines.
const (
	SpriteSize        = 64.0
	HitboxSize        = 40.0
	BaseSpeed         = 5.0 // pixels per frame at the 60 fps baseline
	StartXPThreshold  = 100
	StartGuildXPToLvl = 200
	LegacySpeedBonus  = 1.0
)

// FrameBaseline is the frame length movement speed is expressed against.
const FrameBaseline = time.Second / 60

// Collectibles.
const (
	OrbSize          = 12.0
	XPPerOrb         = 25
	MaxOrbs          = 5
	MaxMemoryItems   = 3
	NarrativeShown   = 3000 * time.Millisecond
	GuildNoticeShown = 2000 * time.Millisecond
	RecruitGuildXP   = 50
)

// Harvestables.
const (
	TreesPerWorld       = 10
	TreeSize            = 40.0
	TreeMaxHealth       = 100
	TreeDamage          = 10
	WoodPerTree         = 10
	TreeRespawnTime     = 5000 * time.Millisecond
	TreeMinPlayerDist   = 200.0
	TreeSpawnAttempts   = 100
	InteractionDistance = 60.0
)

// Transition phase lengths.
const (
	FadeDuration        = 1000 * time.Millisecond
	TextDisplayDuration = 1500 * time.Millisecond
)

// Blink animation.
const (
	BlinkInterval = 3000 * time.Millisecond
	BlinkDuration = 150 * time.Millisecond
)

// Base footprint.
const (
	BaseStartSize  = 100.0
	BaseGrowth     = 20.0
	BaseViewOffset = 50.0
)

// Teleport menu geometry, in viewport pixels.
const (
	MenuWidth        = 300.0
	MenuHeaderHeight = 50.0
	MenuOptionHeight = 30.0
)

// Command line.
const CommandMaxLength = 30
