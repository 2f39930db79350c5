package tuning_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

func TestDefault(t *testing.T) {
	tun, err := tuning.Default()
	require.NoError(t, err)

	assert.Equal(t, 100, tun.GuildLevels.Base)
	assert.Equal(t, 1.5, tun.GuildLevels.Growth)
	assert.Equal(t, 4, tun.PvP.OpponentCount)
	assert.Equal(t, 72*time.Hour, tun.Market.ListingTTL)
	assert.Equal(t, 1.3, tun.Stats.Modifier(entities.ClassWarrior).Defense)
	assert.Equal(t, tuning.NeutralModifier, tun.Stats.Modifier(entities.ClassNone))

	sword, ok := tun.Catalog().Template("wooden_sword")
	require.True(t, ok)
	assert.Equal(t, entities.SlotWeapon, sword.Slot)
	assert.True(t, sword.Equippable())

	potion, ok := tun.Catalog().Template("health_potion")
	require.True(t, ok)
	assert.False(t, potion.Equippable())

	_, ok = tun.Catalog().Template("does_not_exist")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	t.Run("empty path falls back to default", func(t *testing.T) {
		tun, err := tuning.Load("")
		require.NoError(t, err)
		assert.NotEmpty(t, tun.Items)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := tuning.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "balance.yaml")
		raw, err := os.ReadFile("default.yaml")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, raw, 0o600))

		tun, err := tuning.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 5, tun.CharacterLevels.PointsPerLevel)
	})
}

func TestValidate(t *testing.T) {
	t.Run("negative coefficient", func(t *testing.T) {
		tun, err := tuning.Default()
		require.NoError(t, err)

		tun.Stats.AttackPerStrength = -1
		err = tun.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "stats.attack_per_strength")
	})

	t.Run("flat curve", func(t *testing.T) {
		tun, err := tuning.Default()
		require.NoError(t, err)

		tun.GuildLevels.Growth = 0.5
		assert.Error(t, tun.Validate())
	})

	t.Run("opponent count bounds", func(t *testing.T) {
		for _, count := range []int{0, tuning.MaxOpponents + 1, 50} {
			tun, err := tuning.Default()
			require.NoError(t, err)

			tun.PvP.OpponentCount = count
			err = tun.Validate()
			require.Error(t, err, "count %d", count)
			assert.Contains(t, err.Error(), "pvp.opponent_count: must be between 1 and 4")
		}
	})

	t.Run("nan growth in yaml", func(t *testing.T) {
		raw, err := os.ReadFile("default.yaml")
		require.NoError(t, err)

		_, err = tuning.Parse(bytes.Replace(raw, []byte("growth: 1.5"), []byte("growth: .nan"), 1))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "character_levels.growth")
	})

	t.Run("nan class modifier", func(t *testing.T) {
		tun, err := tuning.Default()
		require.NoError(t, err)

		mod := tun.Stats.Classes[entities.ClassMage]
		mod.Attack = math.NaN()
		tun.Stats.Classes[entities.ClassMage] = mod
		err = tun.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stats.classes.mage")
	})

	t.Run("unsorted tiers", func(t *testing.T) {
		tun, err := tuning.Default()
		require.NoError(t, err)

		tun.PvP.Tiers = []tuning.RankTier{{Name: "gold", MinHonor: 100}, {Name: "bronze", MinHonor: 0}}
		assert.Error(t, tun.Validate())
	})

	t.Run("starter item not in catalog", func(t *testing.T) {
		tun, err := tuning.Default()
		require.NoError(t, err)

		tun.Starter.Inventory = append(tun.Starter.Inventory, entities.ItemStack{TemplateID: "ghost", Amount: 1})
		assert.Error(t, tun.Validate())
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := tuning.Parse([]byte("stats: [1, 2"))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})
}
