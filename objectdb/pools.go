package objectdb

import "github.com/nullsector/assetkit/internal/binreader"

// readPools reads all 19 typed value pools in the file's actual layout
// order, which differs from the header's count-order: int8, int16,
// int32, int64, uint8, uint16, uint32, uint64, bool, float, double,
// guid, string-id, locale, enum-value, strong, weak, reference,
// enum-option. Grounded on svarog-datacore's database.rs read_structs /
// builder.rs write_to pool ordering.
func readPools(c *binreader.Cursor, h header) (pools, error) {
	var p pools
	var err error

	if p.int8s, err = readI8Pool(c, int(h.int8Count)); err != nil {
		return p, err
	}
	if p.int16s, err = readI16Pool(c, int(h.int16Count)); err != nil {
		return p, err
	}
	if p.int32s, err = readI32Pool(c, int(h.int32Count)); err != nil {
		return p, err
	}
	if p.int64s, err = readI64Pool(c, int(h.int64Count)); err != nil {
		return p, err
	}
	if p.uint8s, err = readU8Pool(c, int(h.uint8Count)); err != nil {
		return p, err
	}
	if p.uint16s, err = readU16Pool(c, int(h.uint16Count)); err != nil {
		return p, err
	}
	if p.uint32s, err = readU32Pool(c, int(h.uint32Count)); err != nil {
		return p, err
	}
	if p.uint64s, err = readU64Pool(c, int(h.uint64Count)); err != nil {
		return p, err
	}
	if p.bools, err = readBoolPool(c, int(h.boolCount)); err != nil {
		return p, err
	}
	if p.floats, err = readFloatPool(c, int(h.floatCount)); err != nil {
		return p, err
	}
	if p.doubles, err = readDoublePool(c, int(h.doubleCount)); err != nil {
		return p, err
	}
	if p.guids, err = readGUIDPool(c, int(h.guidCount)); err != nil {
		return p, err
	}
	if p.stringIDs, err = readStringIDPool(c, int(h.stringIDCount)); err != nil {
		return p, err
	}
	if p.locales, err = readStringIDPool(c, int(h.localeCount)); err != nil {
		return p, err
	}
	if p.enumVals, err = readStringIDPool(c, int(h.enumValueCount)); err != nil {
		return p, err
	}
	if p.strongs, err = readPointerPool(c, int(h.strongCount)); err != nil {
		return p, err
	}
	if p.weaks, err = readPointerPool(c, int(h.weakCount)); err != nil {
		return p, err
	}
	if p.refs, err = readReferencePool(c, int(h.referenceCount)); err != nil {
		return p, err
	}
	if p.enumOpts, err = readStringID2Pool(c, int(h.enumOptionCount)); err != nil {
		return p, err
	}

	return p, nil
}

func readI8Pool(c *binreader.Cursor, n int) ([]int8, error) {
	out := make([]int8, n)
	for i := range out {
		v, err := c.ReadI8()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readI16Pool(c *binreader.Cursor, n int) ([]int16, error) {
	out := make([]int16, n)
	for i := range out {
		v, err := c.ReadI16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readI32Pool(c *binreader.Cursor, n int) ([]int32, error) {
	out := make([]int32, n)
	for i := range out {
		v, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readI64Pool(c *binreader.Cursor, n int) ([]int64, error) {
	out := make([]int64, n)
	for i := range out {
		v, err := c.ReadI64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readU8Pool(c *binreader.Cursor, n int) ([]uint8, error) {
	out := make([]uint8, n)
	for i := range out {
		v, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readU16Pool(c *binreader.Cursor, n int) ([]uint16, error) {
	out := make([]uint16, n)
	for i := range out {
		v, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readU32Pool(c *binreader.Cursor, n int) ([]uint32, error) {
	out := make([]uint32, n)
	for i := range out {
		v, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readU64Pool(c *binreader.Cursor, n int) ([]uint64, error) {
	out := make([]uint64, n)
	for i := range out {
		v, err := c.ReadU64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readBoolPool(c *binreader.Cursor, n int) ([]bool, error) {
	out := make([]bool, n)
	for i := range out {
		v, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		out[i] = v != 0
	}
	return out, nil
}

func readFloatPool(c *binreader.Cursor, n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		v, err := c.ReadF32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readDoublePool(c *binreader.Cursor, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := c.ReadF64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readGUIDPool(c *binreader.Cursor, n int) ([][16]byte, error) {
	out := make([][16]byte, n)
	for i := range out {
		b, err := c.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		copy(out[i][:], b)
	}
	return out, nil
}

func readStringIDPool(c *binreader.Cursor, n int) ([]StringID, error) {
	out := make([]StringID, n)
	for i := range out {
		v, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = StringID(v)
	}
	return out, nil
}

func readStringID2Pool(c *binreader.Cursor, n int) ([]StringID2, error) {
	out := make([]StringID2, n)
	for i := range out {
		v, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = StringID2(v)
	}
	return out, nil
}

func readPointerPool(c *binreader.Cursor, n int) ([]Pointer, error) {
	out := make([]Pointer, n)
	for i := range out {
		structIndex, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		instanceIndex, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = Pointer{StructIndex: structIndex, InstanceIndex: instanceIndex}
	}
	return out, nil
}

func readReferencePool(c *binreader.Cursor, n int) ([]Reference, error) {
	out := make([]Reference, n)
	for i := range out {
		idBytes, err := c.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		instanceIndex, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		var id [16]byte
		copy(id[:], idBytes)
		out[i] = Reference{RecordID: id, InstanceIndex: instanceIndex}
	}
	return out, nil
}
