package charfile

import "github.com/nullsector/assetkit/internal/binreader"

const (
	dnaPartsCount  = 48
	blendsPerPart  = 4
	dnaExtraSize   = 24
	// DNASize is the total byte width of the morph block (48 parts * 4
	// bytes each, plus 24 bytes of opaque trailing data).
	DNASize = dnaPartsCount*4 + dnaExtraSize
)

// FacePart names one of the 12 four-slot morph groups making up a DNA
// block, in on-disk order.
type FacePart int

// Face part groups, in the order their 4-slot ranges appear in the DNA block.
const (
	FacePartEyebrowLeft FacePart = iota
	FacePartEyebrowRight
	FacePartEyeLeft
	FacePartEyeRight
	FacePartEarLeft
	FacePartEarRight
	FacePartCheekLeft
	FacePartCheekRight
	FacePartNose
	FacePartMouth
	FacePartJaw
	FacePartCrown
)

var facePartNames = [...]string{
	"EyebrowLeft", "EyebrowRight", "EyeLeft", "EyeRight",
	"EarLeft", "EarRight", "CheekLeft", "CheekRight",
	"Nose", "Mouth", "Jaw", "Crown",
}

func (p FacePart) String() string {
	if int(p) < 0 || int(p) >= len(facePartNames) {
		return "Unknown"
	}
	return facePartNames[p]
}

// StartIndex returns the index of the first of this face part's 4
// DnaPart slots.
func (p FacePart) StartIndex() int { return int(p) * blendsPerPart }

// DnaPart is a single 4-byte morph slot: which blend shape it selects
// and how strongly it's applied.
type DnaPart struct {
	HeadID     uint8
	PercentRaw uint16
}

// Percent decodes the slot's normalized weight in [0, 1].
func (d DnaPart) Percent() float32 {
	return float32(d.PercentRaw) / 65535.0
}

// SetPercent encodes a normalized weight in [0, 1], clamping and
// rounding to the nearest representable raw value.
func (d *DnaPart) SetPercent(weight float32) {
	if weight < 0 {
		weight = 0
	}
	if weight > 1 {
		weight = 1
	}
	d.PercentRaw = uint16(weight*65535.0 + 0.5)
}

func readDnaPart(c *binreader.Cursor) (DnaPart, error) {
	var d DnaPart
	headID, err := c.ReadU8()
	if err != nil {
		return d, err
	}
	percent, err := c.ReadU16()
	if err != nil {
		return d, err
	}
	if _, err := c.ReadU8(); err != nil { // padding byte, ignored
		return d, err
	}
	d.HeadID = headID
	d.PercentRaw = percent
	return d, nil
}

func (d DnaPart) write(out []byte) {
	out[0] = d.HeadID
	out[1] = byte(d.PercentRaw)
	out[2] = byte(d.PercentRaw >> 8)
	out[3] = 0
}

// DNA is the 216-byte facial morph block: 48 morph slots grouped into 12
// four-slot face parts, plus 24 bytes of opaque data preserved verbatim
// across parse/rebuild since its meaning is undocumented upstream.
type DNA struct {
	Parts [dnaPartsCount]DnaPart
	Extra [dnaExtraSize]byte
}

// FacePartSlots returns the 4 DnaPart slots belonging to part.
func (d *DNA) FacePartSlots(part FacePart) *[blendsPerPart]DnaPart {
	start := part.StartIndex()
	return (*[blendsPerPart]DnaPart)(d.Parts[start : start+blendsPerPart])
}

func parseDNA(c *binreader.Cursor) (DNA, error) {
	var dna DNA
	for i := range dna.Parts {
		part, err := readDnaPart(c)
		if err != nil {
			return dna, err
		}
		dna.Parts[i] = part
	}
	extra, err := c.ReadBytes(dnaExtraSize)
	if err != nil {
		return dna, err
	}
	copy(dna.Extra[:], extra)
	return dna, nil
}

func (d DNA) appendTo(out []byte) []byte {
	for _, part := range d.Parts {
		var buf [4]byte
		part.write(buf[:])
		out = append(out, buf[:]...)
	}
	return append(out, d.Extra[:]...)
}
