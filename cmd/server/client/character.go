package client

import (
	"github.com/spf13/cobra"
)

var (
	characterID  string
	name         string
	profileImage string
	class        string
	amount       int
)

var createCharacterCmd = &cobra.Command{
	Use:   "create-character",
	Short: "Create a new level one character",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd.OutOrStdout(), "CreateCharacter", map[string]any{
			"name":          name,
			"profile_image": profileImage,
		})
	},
}

var getCharacterCmd = &cobra.Command{
	Use:   "get-character",
	Short: "Get a character by ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd.OutOrStdout(), "GetCharacter", map[string]any{
			"character_id": characterID,
		})
	},
}

var chooseClassCmd = &cobra.Command{
	Use:   "choose-class",
	Short: "Choose warrior, mage or archer for a character",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd.OutOrStdout(), "ChooseClass", map[string]any{
			"character_id": characterID,
			"class":        class,
		})
	},
}

var grantExperienceCmd = &cobra.Command{
	Use:   "grant-experience",
	Short: "Grant experience to a character",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd.OutOrStdout(), "GrantExperience", map[string]any{
			"character_id": characterID,
			"amount":       amount,
		})
	},
}

func init() {
	createCharacterCmd.Flags().StringVar(&name, "name", "", "Character name (required)")
	createCharacterCmd.Flags().StringVar(&profileImage, "profile-image", "", "Profile image URL")
	_ = createCharacterCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init

	for _, cmd := range []*cobra.Command{getCharacterCmd, chooseClassCmd, grantExperienceCmd} {
		cmd.Flags().StringVar(&characterID, "character-id", "", "Character ID (required)")
		_ = cmd.MarkFlagRequired("character-id") // nolint:errcheck // safe to ignore in init
	}

	chooseClassCmd.Flags().StringVar(&class, "class", "", "Class to choose (required)")
	_ = chooseClassCmd.MarkFlagRequired("class") // nolint:errcheck // safe to ignore in init

	grantExperienceCmd.Flags().IntVar(&amount, "amount", 0, "Experience to grant (required)")
	_ = grantExperienceCmd.MarkFlagRequired("amount") // nolint:errcheck // safe to ignore in init
}
