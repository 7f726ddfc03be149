package system

import (
	"errors"

	"go.uber.org/zap"
)

// Rejections returned by game operations. Every rejection leaves the state
// untouched. Match with errors.Is; returned errors usually wrap one of these
// with the offending values.
var (
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrNegativeLevel         = errors.New("level cannot be negative")
	ErrLevelTooHigh          = errors.New("level too high")
	ErrXPOverflow            = errors.New("xp total would overflow")
	ErrBadThreshold          = errors.New("xp threshold must be positive")
	ErrEmptyName             = errors.New("name must not be empty")
	ErrUnknownResource       = errors.New("unknown resource type")
	ErrUnknownRecipe         = errors.New("unknown crafting recipe")
	ErrInsufficientMaterials = errors.New("not enough materials")
	ErrInsufficientXP        = errors.New("not enough XP")
	ErrMaxBaseLevel          = errors.New("base is at max level")
	ErrUnknownAbility        = errors.New("unknown ability")
	ErrAlreadyUnlocked       = errors.New("ability already unlocked")
	ErrAbilityLocked         = errors.New("ability not unlocked")
	ErrLevelTooLow           = errors.New("player level too low")
	ErrOnCooldown            = errors.New("ability on cooldown")
	ErrGuildFull             = errors.New("guild is full")
	ErrAlreadyMember         = errors.New("already a guild member")
	ErrInvalidWorld          = errors.New("invalid world index")
	ErrWorldLocked           = errors.New("world locked")
	ErrUnknownMemory         = errors.New("unknown memory")
	ErrMemoryAlreadyFound    = errors.New("memory already found")
	ErrAlignmentActive       = errors.New("cosmic alignment already active")
	ErrNoAlignments          = errors.New("no cosmic alignments defined")
)

// reject logs a validation warning and hands the error back to the caller.
func reject(log *zap.Logger, err error, fields ...zap.Field) error {
	log.Warn(err.Error(), fields...)
	return err
}
