package objectdb

// recordWalker assigns a stable 0-based id to every distinct weak-pointer
// target reachable from a record, in first-encounter order, without
// following weak pointers further. Strong pointers and same-file
// references are followed; cross-file references and references to main
// records of another file are not. Grounded on svarog-datacore's
// export/walker.rs RecordWalker.
type recordWalker struct {
	db           *Database
	originFile   StringID
	weakPointers map[Pointer]int
	visited      map[Pointer]bool
}

func (db *Database) walkRecordForWeakPointers(r Record) (map[Pointer]int, error) {
	w := &recordWalker{
		db:           db,
		originFile:   r.FileNameOffset,
		weakPointers: make(map[Pointer]int),
		visited:      make(map[Pointer]bool),
	}
	if err := w.walkInstance(r.StructIndex, int32(r.InstanceIndex)); err != nil {
		return nil, err
	}
	return w.weakPointers, nil
}

func (w *recordWalker) walkInstance(structIndex, instanceIndex int32) error {
	key := Pointer{StructIndex: structIndex, InstanceIndex: instanceIndex}
	if w.visited[key] {
		return nil
	}
	w.visited[key] = true

	inst := w.db.NewInstance(structIndex, instanceIndex)
	props, err := inst.Properties()
	if err != nil {
		return err
	}
	for _, pv := range props {
		if err := w.walkValue(pv.Value); err != nil {
			return err
		}
	}
	return nil
}

func (w *recordWalker) walkValue(v Value) error {
	if v.Array != nil {
		for _, el := range v.Array {
			if err := w.walkValue(el); err != nil {
				return err
			}
		}
		return nil
	}

	switch v.Type {
	case TypeClass:
		for _, pv := range v.Class {
			if err := w.walkValue(pv.Value); err != nil {
				return err
			}
		}
	case TypeStrongPointer:
		if p, ok := v.Raw.(Pointer); ok && !p.IsNull() {
			return w.walkInstance(p.StructIndex, p.InstanceIndex)
		}
	case TypeWeakPointer:
		if p, ok := v.Raw.(Pointer); ok && !p.IsNull() {
			w.registerWeak(p)
		}
	case TypeReference:
		if ref, ok := v.Raw.(Reference); ok && !ref.IsNull() {
			if rec, found := w.db.Record(ref.RecordID); found && rec.FileNameOffset == w.originFile {
				return w.walkInstance(rec.StructIndex, int32(rec.InstanceIndex))
			}
		}
	}
	return nil
}

func (w *recordWalker) registerWeak(p Pointer) {
	if _, ok := w.weakPointers[p]; !ok {
		w.weakPointers[p] = len(w.weakPointers)
	}
}
