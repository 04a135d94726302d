package charfile

import "github.com/nullsector/assetkit/internal/binreader"

// Data is the decompressed character file payload: an identity GUID, a
// DNA morph block, an optional attachment tree, and zero or more
// materials. Grounded on svarog-chf's parts/data.rs.
type Data struct {
	GenderID  binreader.Identifier
	DNA       DNA
	ItemPort  *ItemPort // nil when no attachment tree is present
	Materials []Material
}

// ParseData decodes a character file's decompressed payload.
// The attachment tree and the materials list are both best-effort: a
// malformed or truncated tail is tolerated rather than rejected, mirroring
// the reference parser's "never let a cosmetic trailing section break the
// identity/DNA read" behavior.
func ParseData(payload []byte) (*Data, error) {
	c := binreader.NewCursor(payload)
	d := &Data{}

	genderBytes, err := c.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	copy(d.GenderID[:], genderBytes)

	dna, err := parseDNA(c)
	if err != nil {
		return nil, err
	}
	d.DNA = dna

	d.ItemPort = tryParseItemPort(c)
	d.Materials = tryParseMaterials(c)

	return d, nil
}

// tryParseItemPort peeks the next 4 bytes as a name-hash candidate; if
// they're all zero, or too few bytes remain, or the recursive parse
// fails for any reason, it leaves the cursor where it found it and
// reports no tree rather than propagating an error — the attachment
// tree is an optional trailing section, not a required one.
func tryParseItemPort(c *binreader.Cursor) *ItemPort {
	if c.Remaining() < 4 {
		return nil
	}
	hash, err := c.PeekU32()
	if err != nil || hash == 0 {
		return nil
	}

	save := c.Pos()
	port, err := parseItemPortGuarded(c)
	if err != nil {
		c.Seek(save)
		return nil
	}
	return port
}

// tryParseMaterials reads a u32 material count followed by that many
// Material records, stopping silently (not erroring) the moment fewer
// than minMaterialBytes remain or an individual Material fails to parse,
// matching data.rs's tolerance for a truncated materials tail.
func tryParseMaterials(c *binreader.Cursor) []Material {
	if c.Remaining() < 4 {
		return nil
	}
	count, err := c.ReadU32()
	if err != nil {
		return nil
	}

	materials := make([]Material, 0, count)
	for i := uint32(0); i < count; i++ {
		if c.Remaining() < minMaterialBytes {
			break
		}
		save := c.Pos()
		m, err := parseMaterial(c)
		if err != nil {
			c.Seek(save)
			break
		}
		materials = append(materials, m)
	}
	return materials
}

// Bytes re-serializes the payload in the exact field order.
func (d *Data) Bytes() []byte {
	out := make([]byte, 0, 16+DNASize)
	out = append(out, d.GenderID[:]...)
	out = d.DNA.appendTo(out)

	if d.ItemPort != nil {
		out = d.ItemPort.appendTo(out)
	}

	var countBuf [4]byte
	putU32(countBuf[:], uint32(len(d.Materials)))
	out = append(out, countBuf[:]...)
	for _, m := range d.Materials {
		out = m.appendTo(out)
	}

	return out
}
