// Package entities provides the core data structures for realm-api.
// NOTE: These are data-only structs. Rules (stat derivation, custody moves,
// guild progression, matchmaking) live in internal/engine.
package entities

// CharacterClass is the combat class a character picks once
type CharacterClass string

// Character classes
const (
	ClassNone    CharacterClass = ""
	ClassWarrior CharacterClass = "warrior"
	ClassMage    CharacterClass = "mage"
	ClassArcher  CharacterClass = "archer"
)

// AllClasses lists every selectable class
var AllClasses = []CharacterClass{ClassWarrior, ClassMage, ClassArcher}

// IsValid reports whether c is a selectable class
func (c CharacterClass) IsValid() bool {
	for _, known := range AllClasses {
		if c == known {
			return true
		}
	}
	return false
}

// Attributes are the raw points a player distributes
type Attributes struct {
	Strength  int `json:"strength" yaml:"strength"`
	Magic     int `json:"magic" yaml:"magic"`
	Dexterity int `json:"dexterity" yaml:"dexterity"`
	Agility   int `json:"agility" yaml:"agility"`
	Luck      int `json:"luck" yaml:"luck"`
}

// Add returns a+b field by field
func (a Attributes) Add(b Attributes) Attributes {
	return Attributes{
		Strength:  a.Strength + b.Strength,
		Magic:     a.Magic + b.Magic,
		Dexterity: a.Dexterity + b.Dexterity,
		Agility:   a.Agility + b.Agility,
		Luck:      a.Luck + b.Luck,
	}
}

// Values lists the attributes in declaration order
func (a Attributes) Values() []int {
	return []int{a.Strength, a.Magic, a.Dexterity, a.Agility, a.Luck}
}

// HasNegative reports whether any attribute is below zero
func (a Attributes) HasNegative() bool {
	return a.Strength < 0 || a.Magic < 0 || a.Dexterity < 0 || a.Agility < 0 || a.Luck < 0
}

// Stats are derived from attributes, level and class. Health and Mana are
// the only parts that move independently of their source attributes.
type Stats struct {
	MaxHealth      int     `json:"max_health"`
	MaxMana        int     `json:"max_mana"`
	Health         int     `json:"health"`
	Mana           int     `json:"mana"`
	Attack         int     `json:"attack"`
	Defense        int     `json:"defense"`
	Accuracy       float64 `json:"accuracy"`
	DodgeChance    float64 `json:"dodge_chance"`
	CriticalChance float64 `json:"critical_chance"`
	CriticalResist float64 `json:"critical_resist"`
}

// Character is a player's avatar
type Character struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	ProfileImage    string         `json:"profile_image,omitempty"`
	Class           CharacterClass `json:"class,omitempty"`
	Level           int            `json:"level"`
	Experience      int            `json:"experience"`
	AvailablePoints int            `json:"available_points"`
	Attributes      Attributes     `json:"attributes"`
	Stats           Stats          `json:"stats"`
	Gold            int64          `json:"gold"`
	Diamonds        int64          `json:"diamonds"`

	// Custody locations owned by the character. Open market listings are
	// the third location and are stored as MarketListing records.
	Inventory []ItemStack                  `json:"inventory"`
	Equipped  map[EquipmentSlot]*ItemStack `json:"equipped,omitempty"`

	GuildID       string    `json:"guild_id,omitempty"`
	GuildRole     GuildRole `json:"guild_role,omitempty"`
	GuildJoinedAt int64     `json:"guild_joined_at,omitempty"` // unix micros, orders the roster

	PvP PvPStats `json:"pvp"`

	Version   int64 `json:"version"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// HasClass reports whether the character has picked a class
func (c *Character) HasClass() bool {
	return c.Class != ClassNone
}

// InGuild reports whether the character belongs to a guild
func (c *Character) InGuild() bool {
	return c.GuildID != ""
}

// LeaveGuild clears guild membership, keeping GuildID and GuildRole in step
func (c *Character) LeaveGuild() {
	c.GuildID = ""
	c.GuildRole = GuildRoleNone
	c.GuildJoinedAt = 0
}

// JoinGuild sets guild membership with role. joinedAt is in unix micros.
func (c *Character) JoinGuild(guildID string, role GuildRole, joinedAt int64) {
	c.GuildID = guildID
	c.GuildRole = role
	c.GuildJoinedAt = joinedAt
}

// Clone returns a deep copy so rule functions never alias stored state
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Inventory = CloneStacks(c.Inventory)
	out.Equipped = CloneEquipment(c.Equipped)
	return &out
}
