package client

import (
	"github.com/spf13/cobra"
)

var guildID string

var getGuildCmd = &cobra.Command{
	Use:   "get-guild",
	Short: "Get a guild and its roster",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd.OutOrStdout(), "GetGuild", map[string]any{
			"guild_id": guildID,
		})
	},
}

var joinGuildCmd = &cobra.Command{
	Use:   "join-guild",
	Short: "Join an open guild",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd.OutOrStdout(), "JoinGuild", map[string]any{
			"character_id": characterID,
			"guild_id":     guildID,
		})
	},
}

var findOpponentsCmd = &cobra.Command{
	Use:   "find-opponents",
	Short: "Get arena opponents for a character",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd.OutOrStdout(), "FindOpponents", map[string]any{
			"character_id": characterID,
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{getGuildCmd, joinGuildCmd} {
		cmd.Flags().StringVar(&guildID, "guild-id", "", "Guild ID (required)")
		_ = cmd.MarkFlagRequired("guild-id") // nolint:errcheck // safe to ignore in init
	}

	for _, cmd := range []*cobra.Command{joinGuildCmd, findOpponentsCmd} {
		cmd.Flags().StringVar(&characterID, "character-id", "", "Character ID (required)")
		_ = cmd.MarkFlagRequired("character-id") // nolint:errcheck // safe to ignore in init
	}
}
