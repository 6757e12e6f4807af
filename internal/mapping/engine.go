package mapping

// Transform executes the compiled rules, in order, against a source graph and
// returns the target-shaped payload. Later rules merge into target array
// elements built by earlier rules; elements are never reordered or filtered.
//
// A ResolutionError is returned when a scalar source path marked required by
// the target schema cannot be resolved; the caller skips that record and
// continues with others.
func (t *CompiledTemplate) Transform(g *EntityGraph) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	for _, r := range t.rules {
		var err error
		if r.from.Broadcast {
			err = t.applyBroadcast(out, r, g)
		} else {
			err = t.applyScalar(out, r, g)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (t *CompiledTemplate) applyScalar(out map[string]interface{}, r compiledRule, g *EntityGraph) error {
	var val interface{}
	entity, ok := g.Entity(r.from.Head[0])
	if ok {
		val, ok = lookup(entity, r.from.Head[1:])
	}
	if !ok {
		// Absent source fields are skipped unless the target schema says otherwise.
		if t.required[r.to.Raw] {
			return &ResolutionError{Path: r.from.Raw, Target: r.to.Raw}
		}
		return nil
	}
	if r.transform != nil {
		val = r.transform.Apply(val)
	}
	writeField(out, r.to.Head, val)
	return nil
}

func (t *CompiledTemplate) applyBroadcast(out map[string]interface{}, r compiledRule, g *EntityGraph) error {
	elems, ok := g.Collection(r.from.Head[0])
	if !ok {
		return nil
	}

	arr := ensureArray(out, r.to.Head, len(elems))
	for i, el := range elems {
		val, ok := lookup(el, r.from.Tail)
		if !ok {
			continue
		}
		if r.transform != nil {
			val = r.transform.Apply(val)
		}
		obj, ok := arr[i].(map[string]interface{})
		if !ok {
			obj = make(map[string]interface{})
			arr[i] = obj
		}
		writeField(obj, r.to.Tail, val)
	}
	return nil
}

// writeField writes val at a dotted path, creating intermediate objects.
// Existing intermediate values that are not objects are replaced.
func writeField(out map[string]interface{}, segs []string, val interface{}) {
	cur := out
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			cur[seg] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = val
}

// ensureArray walks/creates objects along segs and returns the target array
// at the final segment, grown to at least n elements. The array is stored
// back on its parent so earlier rules' partial elements are merged, not
// overwritten.
func ensureArray(out map[string]interface{}, segs []string, n int) []interface{} {
	parent := out
	for _, seg := range segs[:len(segs)-1] {
		next, ok := parent[seg].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			parent[seg] = next
		}
		parent = next
	}

	key := segs[len(segs)-1]
	arr, ok := parent[key].([]interface{})
	if !ok {
		arr = make([]interface{}, 0, n)
	}
	for len(arr) < n {
		arr = append(arr, make(map[string]interface{}))
	}
	parent[key] = arr
	return arr
}
