package entities

// EquipmentSlot names a place an item can be worn
type EquipmentSlot string

// Equipment slots
const (
	SlotWeapon  EquipmentSlot = "weapon"
	SlotOffhand EquipmentSlot = "offhand"
	SlotHead    EquipmentSlot = "head"
	SlotChest   EquipmentSlot = "chest"
	SlotLegs    EquipmentSlot = "legs"
	SlotBoots   EquipmentSlot = "boots"
	SlotGloves  EquipmentSlot = "gloves"
	SlotAmulet  EquipmentSlot = "amulet"
	SlotRing    EquipmentSlot = "ring"
)

// AllSlots lists every equipment slot
var AllSlots = []EquipmentSlot{
	SlotWeapon, SlotOffhand, SlotHead, SlotChest, SlotLegs,
	SlotBoots, SlotGloves, SlotAmulet, SlotRing,
}

// IsValid reports whether s is a known slot
func (s EquipmentSlot) IsValid() bool {
	for _, known := range AllSlots {
		if s == known {
			return true
		}
	}
	return false
}

// ItemStack is a quantity of one item template held in one custody location
type ItemStack struct {
	TemplateID string            `json:"template_id" yaml:"template_id"`
	Amount     int               `json:"amount" yaml:"amount"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Clone returns a deep copy of the stack
func (s ItemStack) Clone() ItemStack {
	out := s
	if s.Metadata != nil {
		out.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// CloneStacks deep copies a slice of stacks
func CloneStacks(stacks []ItemStack) []ItemStack {
	if stacks == nil {
		return nil
	}
	out := make([]ItemStack, len(stacks))
	for i := range stacks {
		out[i] = stacks[i].Clone()
	}
	return out
}

// CloneEquipment deep copies an equipment map
func CloneEquipment(equipped map[EquipmentSlot]*ItemStack) map[EquipmentSlot]*ItemStack {
	if equipped == nil {
		return nil
	}
	out := make(map[EquipmentSlot]*ItemStack, len(equipped))
	for slot, stack := range equipped {
		if stack == nil {
			continue
		}
		c := stack.Clone()
		out[slot] = &c
	}
	return out
}

// ItemTemplate is the static definition an ItemStack points at
type ItemTemplate struct {
	ID    string        `json:"id" yaml:"id"`
	Name  string        `json:"name" yaml:"name"`
	Value int64         `json:"value" yaml:"value"`
	Slot  EquipmentSlot `json:"slot,omitempty" yaml:"slot,omitempty"`
}

// Equippable reports whether the template can go in any slot
func (t ItemTemplate) Equippable() bool {
	return t.Slot != ""
}
