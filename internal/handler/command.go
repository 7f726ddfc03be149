package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrUnknownCommand is returned for a keyword not in the command list.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command's arguments are missing or malformed.
	ErrUsage = errors.New("usage")
)

// Commands lists every command keyword with its argument hint, in help order.
var Commands = []struct{ Name, Args string }{
	{"level", "<number>"},
	{"xp", "<amount>"},
	{"world", "<index>"},
	{"baseupgrade", ""},
	{"findmemory", "<memory_id>"},
	{"unlockelement", "<element name>"},
	{"useelement", "<element name>"},
	{"guildxp", "<amount>"},
	{"recruit", "<member name>"},
	{"collect", "<resource> <amount>"},
	{"craft", "<item name>"},
	{"savelegacy", ""},
	{"newgameplus", ""},
	{"cosmicalignment", ""},
	{"toggleinventory", ""},
	{"toggleteleport", ""},
	{"cleartrees", ""},
	{"spawntrees", ""},
	{"help", ""},
}

func commandList() string {
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// HandleCommand parses and runs one command line. A leading "/" is optional
// and the keyword is case-insensitive. On success it returns a short
// confirmation; rejected commands return an error and change nothing.
func HandleCommand(ctx context.Context, line string, d *Deps) (string, error) {
	parts := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	if len(parts) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	reply, err := dispatch(ctx, cmd, args, d)
	if err != nil {
		d.Log.Debug("command rejected", zap.String("cmd", cmd), zap.Strings("args", args), zap.Error(err))
		return "", err
	}
	d.Log.Debug("command ok", zap.String("cmd", cmd), zap.Strings("args", args))
	return reply, nil
}

func dispatch(ctx context.Context, cmd string, args []string, d *Deps) (string, error) {
	sys := d.Systems
	switch cmd {
	case "help":
		return cmdHelp(), nil
	case "level":
		n, err := intArg(cmd, args)
		if err != nil {
			return "", err
		}
		if err := sys.Progression.SetLevel(n); err != nil {
			return "", err
		}
		return fmt.Sprintf("Player level set to %d.", n), nil
	case "xp":
		n, err := intArg(cmd, args)
		if err != nil {
			return "", err
		}
		if err := sys.Progression.GainXP(n); err != nil {
			return "", err
		}
		return fmt.Sprintf("Gained %d XP.", n), nil
	case "world":
		n, err := intArg(cmd, args)
		if err != nil {
			return "", err
		}
		started, err := sys.Transition.Teleport(n)
		if err != nil {
			return "", err
		}
		if !started {
			return "Already in that world.", nil
		}
		return fmt.Sprintf("Teleporting to %s...", d.Worlds.Get(n).Name), nil
	case "baseupgrade":
		if err := sys.Economy.UpgradeBase(); err != nil {
			return "", err
		}
		return fmt.Sprintf("Base upgraded to level %d.", d.World.Player.BaseLevel), nil
	case "findmemory":
		if len(args) == 0 {
			unfound := sys.Collectibles.Unfound()
			if len(unfound) == 0 {
				return "", fmt.Errorf("%w (all memories found)", usage(cmd))
			}
			return "", fmt.Errorf("%w (unfound: %s)", usage(cmd), strings.Join(unfound, ", "))
		}
		if err := sys.Collectibles.CollectMemory(args[0]); err != nil {
			return "", err
		}
		return fmt.Sprintf("Memory %s found.", args[0]), nil
	case "unlockelement":
		name := strings.Join(args, " ")
		if name == "" {
			return "", usage(cmd)
		}
		if err := sys.Progression.UnlockAbility(name); err != nil {
			return "", err
		}
		return fmt.Sprintf("Unlocked %s.", name), nil
	case "useelement":
		name := strings.Join(args, " ")
		if name == "" {
			return "", usage(cmd)
		}
		if err := sys.Progression.UseAbility(name); err != nil {
			return "", err
		}
		return fmt.Sprintf("Used %s.", name), nil
	case "guildxp":
		n, err := intArg(cmd, args)
		if err != nil {
			return "", err
		}
		if err := sys.Progression.AddGuildXP(n); err != nil {
			return "", err
		}
		return fmt.Sprintf("Guild gained %d XP.", n), nil
	case "recruit":
		name := strings.Join(args, " ")
		if name == "" {
			return "", usage(cmd)
		}
		if err := sys.Progression.Recruit(name); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s joined %s.", name, d.World.Player.Guild.Name), nil
	case "collect":
		if len(args) != 2 {
			return "", usage(cmd)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return "", usage(cmd)
		}
		if err := sys.Economy.CollectResource(args[0], n); err != nil {
			return "", err
		}
		return fmt.Sprintf("Collected %d %s.", n, strings.ToLower(args[0])), nil
	case "craft":
		name := strings.ToLower(strings.Join(args, "_"))
		if name == "" {
			return "", usage(cmd)
		}
		if err := sys.Economy.CraftItem(name); err != nil {
			return "", err
		}
		return fmt.Sprintf("Crafting %s.", name), nil
	case "savelegacy":
		if err := sys.Legacy.Save(ctx); err != nil {
			return "", err
		}
		return "Legacy saved.", nil
	case "newgameplus":
		if err := sys.Legacy.NewGamePlus(ctx); err != nil {
			return "", err
		}
		return "New Game+ started.", nil
	case "cosmicalignment":
		if err := sys.Alignment.Trigger(); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s has begun.", d.World.Alignment.Active.Name), nil
	case "toggleinventory":
		d.World.UI.ShowInventory = !d.World.UI.ShowInventory
		return "", nil
	case "toggleteleport":
		d.World.UI.ShowTeleport = !d.World.UI.ShowTeleport
		return "", nil
	case "cleartrees":
		sys.Harvest.Clear()
		return "Trees cleared.", nil
	case "spawntrees":
		sys.Harvest.SpawnAll()
		return fmt.Sprintf("Spawned %d trees.", len(d.World.Trees)), nil
	}
	return "", fmt.Errorf("%w %q, available: %s", ErrUnknownCommand, cmd, commandList())
}

func cmdHelp() string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, c := range Commands {
		b.WriteString("\n  /")
		b.WriteString(c.Name)
		if c.Args != "" {
			b.WriteString(" ")
			b.WriteString(c.Args)
		}
	}
	return b.String()
}

func usage(cmd string) error {
	for _, c := range Commands {
		if c.Name == cmd {
			return fmt.Errorf("%w: /%s %s", ErrUsage, c.Name, c.Args)
		}
	}
	return fmt.Errorf("%w: /%s", ErrUsage, cmd)
}

// intArg parses the first argument as an integer.
func intArg(cmd string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, usage(cmd)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, usage(cmd)
	}
	return n, nil
}
