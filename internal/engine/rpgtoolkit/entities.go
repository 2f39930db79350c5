package rpgtoolkit

import "github.com/KirkDiggler/realm-api/internal/entities"

// CharacterEntity wraps entities.Character to implement core.Entity interface
type CharacterEntity struct {
	*entities.Character
}

// GetID returns the character's ID
func (c *CharacterEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CharacterEntity) GetType() string {
	return "character"
}

// GuildEntity wraps entities.Guild to implement core.Entity interface
type GuildEntity struct {
	*entities.Guild
}

// GetID returns the guild's ID
func (g *GuildEntity) GetID() string {
	return g.ID
}

// GetType returns the entity type for rpg-toolkit
func (g *GuildEntity) GetType() string {
	return "guild"
}

// WrapCharacter converts an entities.Character to a CharacterEntity
func WrapCharacter(character *entities.Character) *CharacterEntity {
	return &CharacterEntity{Character: character}
}

// WrapGuild converts an entities.Guild to a GuildEntity
func WrapGuild(guild *entities.Guild) *GuildEntity {
	return &GuildEntity{Guild: guild}
}
