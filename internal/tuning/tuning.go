// Package tuning loads the realm balance file: stat coefficients, experience
// curves, the item catalog and the rules for guilds, the market and PvP.
package tuning

import (
	_ "embed"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
)

//go:embed default.yaml
var defaultYAML []byte

// Tuning is the full balance file
type Tuning struct {
	Stats           StatCurve               `yaml:"stats"`
	CharacterLevels LevelCurve              `yaml:"character_levels"`
	GuildLevels     LevelCurve              `yaml:"guild_levels"`
	Starter         Starter                 `yaml:"starter"`
	Guild           GuildRules              `yaml:"guild"`
	Market          MarketRules             `yaml:"market"`
	PvP             PvPRules                `yaml:"pvp"`
	Items           []entities.ItemTemplate `yaml:"items"`
}

// StatCurve holds the coefficients of the stat derivation formulas
type StatCurve struct {
	HealthBase        float64 `yaml:"health_base"`
	HealthPerStrength float64 `yaml:"health_per_strength"`
	HealthPerLevel    float64 `yaml:"health_per_level"`

	ManaBase     float64 `yaml:"mana_base"`
	ManaPerMagic float64 `yaml:"mana_per_magic"`
	ManaPerLevel float64 `yaml:"mana_per_level"`

	AttackPerStrength  float64 `yaml:"attack_per_strength"`
	AttackPerMagic     float64 `yaml:"attack_per_magic"`
	AttackPerDexterity float64 `yaml:"attack_per_dexterity"`
	AttackPerLevel     float64 `yaml:"attack_per_level"`

	DefensePerStrength float64 `yaml:"defense_per_strength"`
	DefensePerLevel    float64 `yaml:"defense_per_level"`

	AccuracyBase         float64 `yaml:"accuracy_base"`
	AccuracyPerDexterity float64 `yaml:"accuracy_per_dexterity"`
	AccuracyCap          float64 `yaml:"accuracy_cap"`

	DodgePerAgility   float64 `yaml:"dodge_per_agility"`
	DodgeCap          float64 `yaml:"dodge_cap"`
	CritPerLuck       float64 `yaml:"crit_per_luck"`
	CritCap           float64 `yaml:"crit_cap"`
	CritResistPerLuck float64 `yaml:"crit_resist_per_luck"`
	CritResistCap     float64 `yaml:"crit_resist_cap"`

	Classes map[entities.CharacterClass]ClassModifier `yaml:"classes"`
}

// ClassModifier scales the class-sensitive stats
type ClassModifier struct {
	Health  float64 `yaml:"health"`
	Attack  float64 `yaml:"attack"`
	Defense float64 `yaml:"defense"`
}

// NeutralModifier applies to characters without a class
var NeutralModifier = ClassModifier{Health: 1, Attack: 1, Defense: 1}

// Modifier returns the modifier for class, or NeutralModifier
func (c StatCurve) Modifier(class entities.CharacterClass) ClassModifier {
	if mod, ok := c.Classes[class]; ok {
		return mod
	}
	return NeutralModifier
}

// LevelCurve is an experience curve of the form floor(Base * Growth^(level-1))
type LevelCurve struct {
	Base           int     `yaml:"base"`
	Growth         float64 `yaml:"growth"`
	PointsPerLevel int     `yaml:"points_per_level,omitempty"`
}

// Starter is what a freshly created character receives
type Starter struct {
	Attributes      entities.Attributes  `yaml:"attributes"`
	AvailablePoints int                  `yaml:"available_points"`
	Gold            int64                `yaml:"gold"`
	Diamonds        int64                `yaml:"diamonds"`
	Inventory       []entities.ItemStack `yaml:"inventory"`
}

// GuildRules bounds guild creation
type GuildRules struct {
	MaxMembers int `yaml:"max_members"`
	NameMin    int `yaml:"name_min"`
	NameMax    int `yaml:"name_max"`
}

// MarketRules bounds listings
type MarketRules struct {
	ListingTTL time.Duration `yaml:"listing_ttl"`
	MaxPrice   int64         `yaml:"max_price"`
}

// RankTier is the lowest honor total that earns a tier name
type RankTier struct {
	Name     string `yaml:"name"`
	MinHonor int    `yaml:"min_honor"`
}

// MaxOpponents caps how many opponents one search may return
const MaxOpponents = 4

// PvPRules configures matchmaking and battle bookkeeping
type PvPRules struct {
	OpponentCount int        `yaml:"opponent_count"`
	HonorPerWin   int        `yaml:"honor_per_win"`
	HonorPerLoss  int        `yaml:"honor_per_loss"`
	Tiers         []RankTier `yaml:"tiers"`
}

// Default returns the embedded balance file
func Default() (*Tuning, error) {
	return Parse(defaultYAML)
}

// Load reads a balance file from disk. An empty path loads the default.
func Load(path string) (*Tuning, error) {
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tuning file %s", path)
	}

	return Parse(raw)
}

// Parse decodes and validates a balance file
func Parse(raw []byte) (*Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "tuning.yaml")
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return &t, nil
}

// Validate rejects balance files that would break the game rules. Negative
// coefficients are refused so raising an attribute never lowers a stat.
func (t *Tuning) Validate() error {
	vb := errors.NewValidationBuilder()

	s := t.Stats
	coefficients := map[string]float64{
		"stats.health_base":            s.HealthBase,
		"stats.health_per_strength":    s.HealthPerStrength,
		"stats.health_per_level":       s.HealthPerLevel,
		"stats.mana_base":              s.ManaBase,
		"stats.mana_per_magic":         s.ManaPerMagic,
		"stats.mana_per_level":         s.ManaPerLevel,
		"stats.attack_per_strength":    s.AttackPerStrength,
		"stats.attack_per_magic":       s.AttackPerMagic,
		"stats.attack_per_dexterity":   s.AttackPerDexterity,
		"stats.attack_per_level":       s.AttackPerLevel,
		"stats.defense_per_strength":   s.DefensePerStrength,
		"stats.defense_per_level":      s.DefensePerLevel,
		"stats.accuracy_base":          s.AccuracyBase,
		"stats.accuracy_per_dexterity": s.AccuracyPerDexterity,
		"stats.accuracy_cap":           s.AccuracyCap,
		"stats.dodge_per_agility":      s.DodgePerAgility,
		"stats.dodge_cap":              s.DodgeCap,
		"stats.crit_per_luck":          s.CritPerLuck,
		"stats.crit_cap":               s.CritCap,
		"stats.crit_resist_per_luck":   s.CritResistPerLuck,
		"stats.crit_resist_cap":        s.CritResistCap,
	}
	for field, v := range coefficients {
		if !nonNegative(v) {
			vb.Field(field, "must be a non-negative number")
		}
	}

	for class, mod := range s.Classes {
		if !class.IsValid() {
			vb.InvalidField("stats.classes", "unknown class "+string(class))
			continue
		}
		if !nonNegative(mod.Health) || !nonNegative(mod.Attack) || !nonNegative(mod.Defense) {
			vb.Field("stats.classes."+string(class), "modifiers must be non-negative")
		}
	}

	validateCurve("character_levels", t.CharacterLevels, vb)
	validateCurve("guild_levels", t.GuildLevels, vb)

	if t.CharacterLevels.PointsPerLevel < 0 {
		vb.Field("character_levels.points_per_level", "must be non-negative")
	}

	if t.Starter.Attributes.HasNegative() {
		vb.Field("starter.attributes", "must be non-negative")
	}
	if t.Starter.AvailablePoints < 0 || t.Starter.Gold < 0 || t.Starter.Diamonds < 0 {
		vb.Field("starter", "points and currencies must be non-negative")
	}

	if t.Guild.MaxMembers < 1 {
		vb.Field("guild.max_members", "must be at least 1")
	}
	if t.Guild.NameMin < 1 || t.Guild.NameMax < t.Guild.NameMin {
		vb.Field("guild.name_min", "name bounds must satisfy 1 <= name_min <= name_max")
	}

	errors.ValidatePositive("market.listing_ttl", t.Market.ListingTTL, vb)
	errors.ValidatePositive("market.max_price", t.Market.MaxPrice, vb)

	errors.ValidateRange("pvp.opponent_count", t.PvP.OpponentCount, 1, MaxOpponents, vb)
	if t.PvP.HonorPerWin < 0 || t.PvP.HonorPerLoss < 0 {
		vb.Field("pvp", "honor deltas must be non-negative")
	}
	for i, tier := range t.PvP.Tiers {
		if i > 0 && tier.MinHonor <= t.PvP.Tiers[i-1].MinHonor {
			vb.Field("pvp.tiers", "must be sorted by ascending min_honor")
			break
		}
	}

	seen := make(map[string]bool, len(t.Items))
	for _, item := range t.Items {
		switch {
		case item.ID == "":
			vb.RequiredField("items.id")
		case seen[item.ID]:
			vb.Fieldf("items", "duplicate id %s", item.ID)
		case item.Value < 0:
			vb.Fieldf("items."+item.ID, "value must be non-negative")
		case item.Slot != "" && !item.Slot.IsValid():
			vb.Fieldf("items."+item.ID, "unknown slot %s", item.Slot)
		}
		seen[item.ID] = true
	}
	for _, stack := range t.Starter.Inventory {
		if !seen[stack.TemplateID] || stack.Amount < 1 {
			vb.Fieldf("starter.inventory", "invalid stack %s", stack.TemplateID)
		}
	}

	return vb.Build()
}

func validateCurve(field string, c LevelCurve, vb *errors.ValidationBuilder) {
	if c.Base < 1 {
		vb.Field(field+".base", "must be at least 1")
	}
	if math.IsNaN(c.Growth) || c.Growth < 1 || math.IsInf(c.Growth, 0) {
		vb.Field(field+".growth", "must be a finite number of at least 1")
	}
}

// nonNegative is false for NaN and infinities
func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Catalog returns the item templates keyed by id
func (t *Tuning) Catalog() Catalog {
	c := make(Catalog, len(t.Items))
	for _, item := range t.Items {
		c[item.ID] = item
	}
	return c
}

// Catalog is the static item template lookup table
type Catalog map[string]entities.ItemTemplate

// Template looks up a template by id
func (c Catalog) Template(id string) (entities.ItemTemplate, bool) {
	t, ok := c[id]
	return t, ok
}
