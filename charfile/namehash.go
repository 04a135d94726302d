package charfile

import (
	"fmt"

	"github.com/nullsector/assetkit/internal/binreader"
)

// NameHash is a CRC32C hash of a name string, used throughout the
// payload to identify item-port slots, material/texture semantic roles,
// and DNA slot owners without shipping the string itself.
type NameHash uint32

// HashName builds a NameHash from its source string.
func HashName(s string) NameHash {
	return NameHash(binreader.HashString(s))
}

// String renders the name if known, otherwise a hex fallback.
func (h NameHash) String() string {
	if name, ok := nameLookup[uint32(h)]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(h))
}

// KnownName looks up the human-readable name for h, if any.
func (h NameHash) KnownName() (string, bool) {
	name, ok := nameLookup[uint32(h)]
	return name, ok
}

// knownNames mirrors svarog-chf's name_hash.rs KNOWN_NAMES dictionary: a
// nice-to-have reverse-lookup table for debug/display, not required for
// correctness (every wire value round-trips as a raw uint32 regardless
// of whether its name is known).
var knownNames = []string{
	"gender", "male", "female",
	"dna", "head",
	"eyebrow_left", "eyebrow_right", "eye_left", "eye_right",
	"ear_left", "ear_right", "cheek_left", "cheek_right",
	"nose", "mouth", "jaw", "crown",
	"body", "torso", "arms", "legs", "hands", "feet",
	"itemport", "hardpoint",
	"port_head", "port_body", "port_hands", "port_feet",
	"port_torso_undersuit", "port_torso_armor",
	"port_arms_undersuit", "port_arms_armor",
	"port_legs_undersuit", "port_legs_armor",
	"port_hands_undersuit", "port_hands_armor",
	"port_feet_undersuit", "port_feet_armor",
	"port_backpack", "port_helmet", "port_visor",
	"port_weapon_primary", "port_weapon_secondary", "port_weapon_sidearm",
	"port_weapon_melee", "port_tool", "port_gadget", "port_utility",
	"material", "submaterial", "texture",
	"diffuse", "normal", "specular", "gloss", "emissive", "opacity",
	"ao", "metalness", "roughness",
	"color", "color_primary", "color_secondary", "color_tertiary",
	"color_accent", "skin_color", "hair_color", "eye_color",
	"hair", "hair_style", "hair_length", "facial_hair", "beard", "mustache", "eyebrows",
	"face", "face_shape", "face_width", "face_height", "forehead", "cheekbones", "chin", "neck",
	"eyes", "eye_shape", "eye_size", "eye_spacing", "eye_depth", "pupil_size", "iris_color",
	"nose_bridge", "nose_tip", "nose_width", "nostrils",
	"lip_shape", "lip_size", "lip_fullness",
	"wrinkles", "freckles", "moles", "scars", "tattoos",
	"loadout", "equipment", "clothing", "armor", "undersuit",
	"cig", "sc", "star_citizen", "pu", "ac", "sm",
	"attach", "attach_point", "bone", "socket",
	"Head", "EyebrowLeft", "EyebrowRight", "EyeLeft", "EyeRight",
	"EarLeft", "EarRight", "CheekLeft", "CheekRight",
	"Nose", "Mouth", "Jaw", "Crown",
}

var nameLookup = func() map[uint32]string {
	m := make(map[uint32]string, len(knownNames))
	for _, name := range knownNames {
		m[binreader.HashString(name)] = name
	}
	return m
}()
