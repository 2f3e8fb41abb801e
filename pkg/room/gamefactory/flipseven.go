package gamefactory

import (
	"fmt"

	"flip7-server/internal/config"
	"flip7-server/pkg/playable"
	"flip7-server/pkg/playable/flipseven"

	"github.com/sirupsen/logrus"
)

type flipSevenFactory struct{}

func (f flipSevenFactory) CreateGame(logger logrus.FieldLogger, table playable.Table, players []playable.Player, additionalData playable.AdditionalData) (playable.Playable, error) {
	return flipseven.NewGame(logger, table, players, getFlipSevenOptions(config.Instance().Game, additionalData))
}

func (f flipSevenFactory) Details(additionalData playable.AdditionalData) (string, error) {
	opts := getFlipSevenOptions(config.Instance().Game, additionalData)
	return fmt.Sprintf("Flip 7 (first to %d)", opts.TargetScore), nil
}

func getFlipSevenOptions(cfg config.Game, data playable.AdditionalData) flipseven.Options {
	opts := flipseven.DefaultOptions()
	if cfg.TargetScore > 0 {
		opts.TargetScore = cfg.TargetScore
	}

	if cfg.WinThreshold > 0 {
		opts.WinThreshold = cfg.WinThreshold
	}

	if cfg.FlipThreeDraws > 0 {
		opts.FlipThreeDraws = cfg.FlipThreeDraws
	}

	// zero disables the prompt timeout
	if cfg.PromptTimeout >= 0 {
		opts.PromptTimeout = cfg.PromptTimeout
	}

	if cfg.MinActivePlayers > 0 {
		opts.MinActivePlayers = cfg.MinActivePlayers
	}

	if cfg.MaxPlayers > 0 {
		opts.MaxPlayers = cfg.MaxPlayers
	}

	opts.Seed = cfg.Seed

	// the shuffle is never taken from the payload
	if target, _ := data.GetInt("targetScore"); target > 0 {
		opts.TargetScore = target
	}

	return opts
}
