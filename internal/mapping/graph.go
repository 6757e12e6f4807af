package mapping

// EntityGraph is a read-only bundle of named entities and collections with
// dotted-path field access. The surrounding application builds it from
// already-fetched rows; the engine itself never does I/O.
type EntityGraph struct {
	entities    map[string]map[string]interface{}
	collections map[string][]map[string]interface{}
}

// NewEntityGraph creates an empty EntityGraph.
func NewEntityGraph() *EntityGraph {
	return &EntityGraph{
		entities:    make(map[string]map[string]interface{}),
		collections: make(map[string][]map[string]interface{}),
	}
}

// SetEntity registers a singular entity (e.g. Company, Site) by name.
func (g *EntityGraph) SetEntity(name string, fields map[string]interface{}) {
	g.entities[name] = fields
}

// SetCollection registers an ordered collection (e.g. Worker, Machine, Docs)
// by name. Element order is preserved through broadcast rules.
func (g *EntityGraph) SetCollection(name string, elems []map[string]interface{}) {
	g.collections[name] = elems
}

// Entity returns the named singular entity.
func (g *EntityGraph) Entity(name string) (map[string]interface{}, bool) {
	e, ok := g.entities[name]
	return e, ok
}

// Collection returns the named collection.
func (g *EntityGraph) Collection(name string) ([]map[string]interface{}, bool) {
	c, ok := g.collections[name]
	return c, ok
}

// lookup walks a dotted field path through nested maps. A missing key, a nil
// value, or a non-object intermediate all report absent.
func lookup(fields map[string]interface{}, segs []string) (interface{}, bool) {
	var cur interface{} = fields
	for _, seg := range segs {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}
