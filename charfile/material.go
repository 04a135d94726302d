package charfile

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/nullsector/assetkit/internal/binreader"
)

// ColorRGBA is a material color parameter, decoded from 4 raw bytes
// (0-255 per channel) into normalized 0.0-1.0 components.
type ColorRGBA struct {
	R, G, B, A float32
}

func parseColorRGBA(c *binreader.Cursor) (ColorRGBA, error) {
	raw, err := c.ReadBytes(4)
	if err != nil {
		return ColorRGBA{}, err
	}
	return ColorRGBA{
		R: float32(raw[0]) / 255.0,
		G: float32(raw[1]) / 255.0,
		B: float32(raw[2]) / 255.0,
		A: float32(raw[3]) / 255.0,
	}, nil
}

func clampChannel(v float32) byte {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(v*255.0 + 0.5)
}

func (c ColorRGBA) appendTo(out []byte) []byte {
	return append(out, clampChannel(c.R), clampChannel(c.G), clampChannel(c.B), clampChannel(c.A))
}

// Texture names a single texture slot: its semantic role (type hash)
// and a raw, non-NUL-terminated UTF-8 path of the declared length.
type Texture struct {
	TypeHash NameHash
	Path     string
}

func parseTexture(c *binreader.Cursor) (Texture, error) {
	typeHash, err := c.ReadU32()
	if err != nil {
		return Texture{}, err
	}
	pathLen, err := c.ReadU32()
	if err != nil {
		return Texture{}, err
	}
	raw, err := c.ReadBytes(int(pathLen))
	if err != nil {
		return Texture{}, err
	}
	return Texture{TypeHash: NameHash(typeHash), Path: decodeTexturePath(raw)}, nil
}

// decodeTexturePath decodes a texture path as plain UTF-8, the shape
// every current shipping material uses. A handful of legacy records
// instead carry a UTF-16LE path (an artifact of an older exporter); if
// the raw bytes aren't valid UTF-8, this falls back to decoding them as
// UTF-16LE, the same backend a legacy resource-string decoder
// uses for resource strings.
func decodeTexturePath(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func (t Texture) appendTo(out []byte) []byte {
	var head [8]byte
	putU32(head[0:4], uint32(t.TypeHash))
	putU32(head[4:8], uint32(len(t.Path)))
	out = append(out, head[:]...)
	return append(out, []byte(t.Path)...)
}

// NamedFloat is a (name hash, value) float parameter pair.
type NamedFloat struct {
	NameHash NameHash
	Value    float32
}

// NamedColor is a (name hash, value) color parameter pair.
type NamedColor struct {
	NameHash NameHash
	Value    ColorRGBA
}

// SubMaterial carries one material layer's textures and scalar/color
// parameters. Unlike Material it has no opaque trailing-bytes field —
// confirmed against svarog-chf's material.rs, which gives that field to
// Material alone.
type SubMaterial struct {
	NameHash NameHash
	Textures []Texture
	Floats   []NamedFloat
	Colors   []NamedColor
}

func parseSubMaterial(c *binreader.Cursor) (SubMaterial, error) {
	var sm SubMaterial

	hash, err := c.ReadU32()
	if err != nil {
		return sm, err
	}
	sm.NameHash = NameHash(hash)

	texCount, err := c.ReadU32()
	if err != nil {
		return sm, err
	}
	sm.Textures = make([]Texture, 0, texCount)
	for i := uint32(0); i < texCount; i++ {
		tex, err := parseTexture(c)
		if err != nil {
			return sm, err
		}
		sm.Textures = append(sm.Textures, tex)
	}

	floatCount, err := c.ReadU32()
	if err != nil {
		return sm, err
	}
	sm.Floats = make([]NamedFloat, 0, floatCount)
	for i := uint32(0); i < floatCount; i++ {
		h, err := c.ReadU32()
		if err != nil {
			return sm, err
		}
		v, err := c.ReadF32()
		if err != nil {
			return sm, err
		}
		sm.Floats = append(sm.Floats, NamedFloat{NameHash: NameHash(h), Value: v})
	}

	colorCount, err := c.ReadU32()
	if err != nil {
		return sm, err
	}
	sm.Colors = make([]NamedColor, 0, colorCount)
	for i := uint32(0); i < colorCount; i++ {
		h, err := c.ReadU32()
		if err != nil {
			return sm, err
		}
		col, err := parseColorRGBA(c)
		if err != nil {
			return sm, err
		}
		sm.Colors = append(sm.Colors, NamedColor{NameHash: NameHash(h), Value: col})
	}

	return sm, nil
}

func (sm SubMaterial) appendTo(out []byte) []byte {
	var head [4]byte
	putU32(head[:], uint32(sm.NameHash))
	out = append(out, head[:]...)

	var countBuf [4]byte
	putU32(countBuf[:], uint32(len(sm.Textures)))
	out = append(out, countBuf[:]...)
	for _, tex := range sm.Textures {
		out = tex.appendTo(out)
	}

	putU32(countBuf[:], uint32(len(sm.Floats)))
	out = append(out, countBuf[:]...)
	for _, nf := range sm.Floats {
		var pair [8]byte
		putU32(pair[0:4], uint32(nf.NameHash))
		putU32(pair[4:8], binreader.Float32Bits(nf.Value))
		out = append(out, pair[:]...)
	}

	putU32(countBuf[:], uint32(len(sm.Colors)))
	out = append(out, countBuf[:]...)
	for _, nc := range sm.Colors {
		var h [4]byte
		putU32(h[:], uint32(nc.NameHash))
		out = append(out, h[:]...)
		out = nc.Value.appendTo(out)
	}

	return out
}

// Material is one equippable appearance record: a name, an optional
// attached-item GUID, an opaque length-prefixed blob whose structure is
// undocumented upstream (see spec's Open Questions), and a list of
// SubMaterial layers.
type Material struct {
	NameHash         NameHash
	GUID             binreader.Identifier
	AdditionalParams []byte
	SubMaterials     []SubMaterial
}

// minMaterialBytes is the smallest plausible remaining-bytes count for
// a Material record: 4 (name hash) + 16 (GUID) = 20, matching the
// truncation-tolerance threshold the payload-level materials loop uses.
const minMaterialBytes = 20

func parseMaterial(c *binreader.Cursor) (Material, error) {
	var m Material

	hash, err := c.ReadU32()
	if err != nil {
		return m, err
	}
	m.NameHash = NameHash(hash)

	guidBytes, err := c.ReadBytes(16)
	if err != nil {
		return m, err
	}
	copy(m.GUID[:], guidBytes)

	paramsLen, err := c.ReadU32()
	if err != nil {
		return m, err
	}
	params, err := c.ReadBytes(int(paramsLen))
	if err != nil {
		return m, err
	}
	m.AdditionalParams = append([]byte(nil), params...)

	subCount, err := c.ReadU32()
	if err != nil {
		return m, err
	}
	m.SubMaterials = make([]SubMaterial, 0, subCount)
	for i := uint32(0); i < subCount; i++ {
		sub, err := parseSubMaterial(c)
		if err != nil {
			return m, err
		}
		m.SubMaterials = append(m.SubMaterials, sub)
	}

	return m, nil
}

func (m Material) appendTo(out []byte) []byte {
	var head [4]byte
	putU32(head[:], uint32(m.NameHash))
	out = append(out, head[:]...)
	out = append(out, m.GUID[:]...)

	var lenBuf [4]byte
	putU32(lenBuf[:], uint32(len(m.AdditionalParams)))
	out = append(out, lenBuf[:]...)
	out = append(out, m.AdditionalParams...)

	putU32(lenBuf[:], uint32(len(m.SubMaterials)))
	out = append(out, lenBuf[:]...)
	for _, sub := range m.SubMaterials {
		out = sub.appendTo(out)
	}
	return out
}
