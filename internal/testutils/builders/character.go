// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/realm-api/internal/entities"
)

// CharacterBuilder provides a fluent interface for building test Character instances
type CharacterBuilder struct {
	character *entities.Character
}

// NewCharacter creates a new builder with minimal defaults: a classless
// level 1 character with five points in every attribute
func NewCharacter(id string) *CharacterBuilder {
	return &CharacterBuilder{
		character: &entities.Character{
			ID:    id,
			Name:  "Hero " + id,
			Level: 1,
			Attributes: entities.Attributes{
				Strength: 5, Magic: 5, Dexterity: 5, Agility: 5, Luck: 5,
			},
			Inventory: []entities.ItemStack{},
			Equipped:  map[entities.EquipmentSlot]*entities.ItemStack{},
		},
	}
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.character.Name = name
	return b
}

// WithClass sets the class
func (b *CharacterBuilder) WithClass(class entities.CharacterClass) *CharacterBuilder {
	b.character.Class = class
	return b
}

// WithLevel sets the level
func (b *CharacterBuilder) WithLevel(level int) *CharacterBuilder {
	b.character.Level = level
	return b
}

// WithPoints sets the unallocated attribute points
func (b *CharacterBuilder) WithPoints(points int) *CharacterBuilder {
	b.character.AvailablePoints = points
	return b
}

// WithStats sets derived stats
func (b *CharacterBuilder) WithStats(stats entities.Stats) *CharacterBuilder {
	b.character.Stats = stats
	return b
}

// WithGold sets the gold balance
func (b *CharacterBuilder) WithGold(gold int64) *CharacterBuilder {
	b.character.Gold = gold
	return b
}

// WithDiamonds sets the diamond balance
func (b *CharacterBuilder) WithDiamonds(diamonds int64) *CharacterBuilder {
	b.character.Diamonds = diamonds
	return b
}

// WithItem appends an inventory stack
func (b *CharacterBuilder) WithItem(templateID string, amount int) *CharacterBuilder {
	b.character.Inventory = append(b.character.Inventory, entities.ItemStack{
		TemplateID: templateID,
		Amount:     amount,
	})
	return b
}

// WithEquipped puts a single unit of templateID in slot
func (b *CharacterBuilder) WithEquipped(slot entities.EquipmentSlot, templateID string) *CharacterBuilder {
	b.character.Equipped[slot] = &entities.ItemStack{TemplateID: templateID, Amount: 1}
	return b
}

// InGuild sets guild membership. joinedAt orders the roster.
func (b *CharacterBuilder) InGuild(guildID string, role entities.GuildRole, joinedAt int64) *CharacterBuilder {
	b.character.JoinGuild(guildID, role, joinedAt)
	return b
}

// WithPvP sets the arena record
func (b *CharacterBuilder) WithPvP(pvp entities.PvPStats) *CharacterBuilder {
	b.character.PvP = pvp
	return b
}

// Build returns the built character
func (b *CharacterBuilder) Build() *entities.Character {
	return b.character
}

// GuildBuilder provides a fluent interface for building test Guild instances
type GuildBuilder struct {
	guild *entities.Guild
}

// NewGuild creates a level 1 open guild led by leaderID
func NewGuild(id, leaderID string) *GuildBuilder {
	return &GuildBuilder{
		guild: &entities.Guild{
			ID:               id,
			Name:             "Guild " + id,
			Level:            1,
			ExperienceToNext: 100,
			LeaderID:         leaderID,
			MaxMembers:       20,
			Settings:         entities.GuildSettings{JoinType: entities.JoinTypeOpen},
		},
	}
}

// WithName sets the guild name
func (b *GuildBuilder) WithName(name string) *GuildBuilder {
	b.guild.Name = name
	return b
}

// WithMaxMembers sets the member cap
func (b *GuildBuilder) WithMaxMembers(n int) *GuildBuilder {
	b.guild.MaxMembers = n
	return b
}

// Closed makes the guild invitation only
func (b *GuildBuilder) Closed() *GuildBuilder {
	b.guild.Settings.JoinType = entities.JoinTypeClosed
	return b
}

// Build returns the built guild
func (b *GuildBuilder) Build() *entities.Guild {
	return b.guild
}
