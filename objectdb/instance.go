package objectdb

import "github.com/nullsector/assetkit/internal/binreader"

// Instance addresses one concrete object: an instance index within a
// struct's instance block. Grounded on svarog-datacore's instance.rs
// Instance<'a>.
type Instance struct {
	db            *Database
	StructIndex   int32
	InstanceIndex int32
}

// NewInstance returns a handle for one instance of structIndex. It does
// not itself read any bytes.
func (db *Database) NewInstance(structIndex, instanceIndex int32) *Instance {
	return &Instance{db: db, StructIndex: structIndex, InstanceIndex: instanceIndex}
}

// TypeName returns the struct name this instance was created from.
func (i *Instance) TypeName() string { return i.db.StructName(i.StructIndex) }

// Properties decodes every property of this instance, in
// parent-first-then-own declared order.
func (i *Instance) Properties() ([]PropertyValue, error) {
	data, err := i.db.getInstanceReader(i.StructIndex, i.InstanceIndex)
	if err != nil {
		return nil, err
	}
	return i.db.readInstanceProperties(data, i.StructIndex)
}

// Property decodes only the named property, skipping over the bytes of
// every property that precedes it without decoding them. Grounded on
// svarog-datacore's instance.rs read_property_value / skip_property.
func (i *Instance) Property(name string) (Value, error) {
	data, err := i.db.getInstanceReader(i.StructIndex, i.InstanceIndex)
	if err != nil {
		return Value{}, err
	}
	return i.db.readNamedProperty(data, i.StructIndex, name)
}

// HasProperty reports whether structIndex declares (directly or via
// inheritance) a property with this name.
func (i *Instance) HasProperty(name string) bool {
	props, err := i.db.getStructProperties(i.StructIndex)
	if err != nil {
		return false
	}
	for _, p := range props {
		if i.db.PropertyName(p) == name {
			return true
		}
	}
	return false
}

// readInstanceProperties decodes every property of structIndex from the
// start of data, in flattened parent-first order.
func (db *Database) readInstanceProperties(data []byte, structIndex int32) ([]PropertyValue, error) {
	props, err := db.getStructProperties(structIndex)
	if err != nil {
		return nil, err
	}
	c := binreader.NewCursor(data)
	out := make([]PropertyValue, 0, len(props))
	for _, p := range props {
		v, err := db.readPropertyValue(c, p)
		if err != nil {
			return nil, err
		}
		out = append(out, PropertyValue{Def: p, Name: db.PropertyName(p), Value: v})
	}
	return out, nil
}

// readNamedProperty advances a cursor over data, skipping undecoded
// properties until name is reached, then decodes just that one.
func (db *Database) readNamedProperty(data []byte, structIndex int32, name string) (Value, error) {
	props, err := db.getStructProperties(structIndex)
	if err != nil {
		return Value{}, err
	}
	c := binreader.NewCursor(data)
	for _, p := range props {
		if db.PropertyName(p) == name {
			return db.readPropertyValue(c, p)
		}
		n, err := db.skipPropertySize(p)
		if err != nil {
			return Value{}, err
		}
		if err := c.Advance(n); err != nil {
			return Value{}, err
		}
	}
	return Value{}, &PropertyNotFoundError{StructName: db.StructName(structIndex), PropertyName: name}
}

// skipPropertySize returns the number of bytes a property occupies
// inline, without decoding it: 8 for any array (count+first-index),
// the target struct's declared size for an embedded Class, otherwise
// the data type's fixed inline size. The embedded-Class size is read
// directly from the struct definition rather than computed by a
// recursive skip over the class's own properties.
func (db *Database) skipPropertySize(p PropertyDefinition) (int, error) {
	if p.IsArray() {
		return 8, nil
	}
	if p.DataType == TypeClass {
		if int(p.StructIndex) >= len(db.structDefs) {
			return 0, &BadStructIndexError{Index: int(p.StructIndex)}
		}
		return int(db.structDefs[p.StructIndex].StructSize), nil
	}
	return p.DataType.InlineSize(), nil
}

// readPropertyValue decodes one property at the cursor's current
// position, advancing it past the property's inline bytes. Grounded on
// svarog-datacore's instance.rs read_single_value / array handling.
func (db *Database) readPropertyValue(c *binreader.Cursor, p PropertyDefinition) (Value, error) {
	if p.IsArray() {
		return db.readArrayValue(c, p)
	}
	return db.readScalarValue(c, p)
}

func (db *Database) readScalarValue(c *binreader.Cursor, p PropertyDefinition) (Value, error) {
	switch p.DataType {
	case TypeBoolean:
		v, err := c.ReadU8()
		return Value{Type: p.DataType, Raw: v != 0}, err
	case TypeSByte:
		v, err := c.ReadI8()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeInt16:
		v, err := c.ReadI16()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeInt32:
		v, err := c.ReadI32()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeInt64:
		v, err := c.ReadI64()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeByte:
		v, err := c.ReadU8()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeUInt16:
		v, err := c.ReadU16()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeUInt32:
		v, err := c.ReadU32()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeUInt64:
		v, err := c.ReadU64()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeSingle:
		v, err := c.ReadF32()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeDouble:
		v, err := c.ReadF64()
		return Value{Type: p.DataType, Raw: v}, err
	case TypeString, TypeLocale, TypeEnumChoice:
		raw, err := c.ReadI32()
		if err != nil {
			return Value{}, err
		}
		return Value{Type: p.DataType, Raw: db.String1(StringID(raw))}, nil
	case TypeGUID:
		b, err := c.ReadBytes(16)
		if err != nil {
			return Value{}, err
		}
		var g [16]byte
		copy(g[:], b)
		return Value{Type: p.DataType, Raw: g}, nil
	case TypeStrongPointer, TypeWeakPointer:
		structIndex, err := c.ReadI32()
		if err != nil {
			return Value{}, err
		}
		instanceIndex, err := c.ReadI32()
		if err != nil {
			return Value{}, err
		}
		return Value{Type: p.DataType, Raw: Pointer{StructIndex: structIndex, InstanceIndex: instanceIndex}}, nil
	case TypeReference:
		idBytes, err := c.ReadBytes(16)
		if err != nil {
			return Value{}, err
		}
		instanceIndex, err := c.ReadI32()
		if err != nil {
			return Value{}, err
		}
		var id [16]byte
		copy(id[:], idBytes)
		return Value{Type: p.DataType, Raw: Reference{RecordID: id, InstanceIndex: instanceIndex}}, nil
	case TypeClass:
		return db.readEmbeddedClass(c, p)
	default:
		return Value{}, &InvalidDataTypeError{Tag: uint16(p.DataType)}
	}
}

// readEmbeddedClass decodes a Class property's nested struct inline,
// continuing to read from the same cursor rather than a separate
// instance — unlike an array of Class, whose elements are separate
// instances in their own struct's instance block.
func (db *Database) readEmbeddedClass(c *binreader.Cursor, p PropertyDefinition) (Value, error) {
	nested, err := db.getStructProperties(int32(p.StructIndex))
	if err != nil {
		return Value{}, err
	}
	props := make([]PropertyValue, 0, len(nested))
	for _, np := range nested {
		v, err := db.readPropertyValue(c, np)
		if err != nil {
			return Value{}, err
		}
		props = append(props, PropertyValue{Def: np, Name: db.PropertyName(np), Value: v})
	}
	return Value{Type: TypeClass, ClassStructIndex: int32(p.StructIndex), Class: props}, nil
}

// readArrayValue decodes an 8-byte (count, first-index) array header
// then its elements. Primitive and reference element kinds pull from
// the corresponding typed value pool; Class elements are separate
// instances of p.StructIndex at [firstIndex, firstIndex+count).
func (db *Database) readArrayValue(c *binreader.Cursor, p PropertyDefinition) (Value, error) {
	count, err := c.ReadI32()
	if err != nil {
		return Value{}, err
	}
	firstIndex, err := c.ReadI32()
	if err != nil {
		return Value{}, err
	}

	elements := make([]Value, 0, count)
	for i := int32(0); i < count; i++ {
		idx := firstIndex + i
		v, err := db.readPoolElement(p, idx)
		if err != nil {
			return Value{}, err
		}
		elements = append(elements, v)
	}

	return Value{Type: p.DataType, Array: elements}, nil
}

// readPoolElement decodes a single array element of type p.DataType at
// absolute pool index idx.
func (db *Database) readPoolElement(p PropertyDefinition, idx int32) (Value, error) {
	pool := db.pools
	switch p.DataType {
	case TypeBoolean:
		return Value{Type: p.DataType, Raw: at(pool.bools, idx)}, nil
	case TypeSByte:
		return Value{Type: p.DataType, Raw: at(pool.int8s, idx)}, nil
	case TypeInt16:
		return Value{Type: p.DataType, Raw: at(pool.int16s, idx)}, nil
	case TypeInt32:
		return Value{Type: p.DataType, Raw: at(pool.int32s, idx)}, nil
	case TypeInt64:
		return Value{Type: p.DataType, Raw: at(pool.int64s, idx)}, nil
	case TypeByte:
		return Value{Type: p.DataType, Raw: at(pool.uint8s, idx)}, nil
	case TypeUInt16:
		return Value{Type: p.DataType, Raw: at(pool.uint16s, idx)}, nil
	case TypeUInt32:
		return Value{Type: p.DataType, Raw: at(pool.uint32s, idx)}, nil
	case TypeUInt64:
		return Value{Type: p.DataType, Raw: at(pool.uint64s, idx)}, nil
	case TypeSingle:
		return Value{Type: p.DataType, Raw: at(pool.floats, idx)}, nil
	case TypeDouble:
		return Value{Type: p.DataType, Raw: at(pool.doubles, idx)}, nil
	case TypeGUID:
		return Value{Type: p.DataType, Raw: at(pool.guids, idx)}, nil
	case TypeString:
		return Value{Type: p.DataType, Raw: db.String1(at(pool.stringIDs, idx))}, nil
	case TypeLocale:
		return Value{Type: p.DataType, Raw: db.String1(at(pool.locales, idx))}, nil
	case TypeEnumChoice:
		return Value{Type: p.DataType, Raw: db.String1(at(pool.enumVals, idx))}, nil
	case TypeStrongPointer:
		return Value{Type: p.DataType, Raw: at(pool.strongs, idx)}, nil
	case TypeWeakPointer:
		return Value{Type: p.DataType, Raw: at(pool.weaks, idx)}, nil
	case TypeReference:
		return Value{Type: p.DataType, Raw: at(pool.refs, idx)}, nil
	case TypeClass:
		return db.readClassArrayElement(p, idx)
	default:
		return Value{}, &InvalidDataTypeError{Tag: uint16(p.DataType)}
	}
}

// readClassArrayElement decodes one element of a Class-typed array: a
// full separate instance of p.StructIndex at instance index idx.
func (db *Database) readClassArrayElement(p PropertyDefinition, idx int32) (Value, error) {
	data, err := db.getInstanceReader(int32(p.StructIndex), idx)
	if err != nil {
		return Value{}, err
	}
	props, err := db.readInstanceProperties(data, int32(p.StructIndex))
	if err != nil {
		return Value{}, err
	}
	return Value{Type: TypeClass, ClassStructIndex: int32(p.StructIndex), Class: props}, nil
}

func at[T any](pool []T, idx int32) T {
	if idx < 0 || int(idx) >= len(pool) {
		var zero T
		return zero
	}
	return pool[idx]
}
