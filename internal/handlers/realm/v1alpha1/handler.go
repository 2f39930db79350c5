// Package v1alpha1 handles the realm grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/services/character"
	"github.com/KirkDiggler/realm-api/internal/services/guild"
	"github.com/KirkDiggler/realm-api/internal/services/inventory"
	"github.com/KirkDiggler/realm-api/internal/services/pvp"
)

// HandlerConfig holds dependencies for the realm handler
type HandlerConfig struct {
	CharacterService character.Service
	InventoryService inventory.Service
	GuildService     guild.Service
	PvPService       pvp.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if c.InventoryService == nil {
		vb.RequiredField("InventoryService")
	}
	if c.GuildService == nil {
		vb.RequiredField("GuildService")
	}
	if c.PvPService == nil {
		vb.RequiredField("PvPService")
	}

	return vb.Build()
}

// Handler implements RealmServiceServer on top of the domain services
type Handler struct {
	characterService character.Service
	inventoryService inventory.Service
	guildService     guild.Service
	pvpService       pvp.Service
}

// NewHandler creates a new realm handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characterService: cfg.CharacterService,
		inventoryService: cfg.InventoryService,
		guildService:     cfg.GuildService,
		pvpService:       cfg.PvPService,
	}, nil
}

var _ RealmServiceServer = (*Handler)(nil)

type characterRef struct {
	CharacterID string `json:"character_id"`
}

// CreateCharacter creates a level one character without a class
func (h *Handler) CreateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		Name         string `json:"name"`
		ProfileImage string `json:"profile_image"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.CreateCharacter(ctx, &character.CreateCharacterInput{
		Name:         body.Name,
		ProfileImage: body.ProfileImage,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"character": out.Character})
}

// GetCharacter returns a character
func (h *Handler) GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body characterRef
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.GetCharacter(ctx, &character.GetCharacterInput{
		CharacterID: body.CharacterID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"character": out.Character})
}

// ChooseClass picks the character's class once
func (h *Handler) ChooseClass(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		Class       string `json:"class"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.ChooseClass(ctx, &character.ChooseClassInput{
		CharacterID: body.CharacterID,
		Class:       entities.CharacterClass(body.Class),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"character": out.Character})
}

// AllocatePoints spends unallocated points on attributes
func (h *Handler) AllocatePoints(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string              `json:"character_id"`
		Points      entities.Attributes `json:"points"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.AllocatePoints(ctx, &character.AllocatePointsInput{
		CharacterID: body.CharacterID,
		Points:      body.Points,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"character": out.Character})
}

// GrantExperience adds experience and applies any level ups
func (h *Handler) GrantExperience(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body struct {
		CharacterID string `json:"character_id"`
		Amount      int    `json:"amount"`
	}
	if err := decode(req, &body); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.GrantExperience(ctx, &character.GrantExperienceInput{
		CharacterID: body.CharacterID,
		Amount:      body.Amount,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"character":     out.Character,
		"levels_gained": out.LevelsGained,
	})
}
