package modelcheck

import "gorm.io/modelcheck/relation"

// Edge relation observed on a class
type Edge struct {
	Source string
	Method string
	Kind   relation.Kind
	Target string
}

// Registry edges of a single run, grouped by source class
type Registry struct {
	classes []string
	edges   map[string][]Edge
	len     int
}

// NewRegistry empty registry
func NewRegistry() *Registry {
	return &Registry{edges: map[string][]Edge{}}
}

// Append record edge
func (r *Registry) Append(edge Edge) {
	if _, ok := r.edges[edge.Source]; !ok {
		r.classes = append(r.classes, edge.Source)
	}
	r.edges[edge.Source] = append(r.edges[edge.Source], edge)
	r.len++
}

// Classes source classes, in order of their first edge
func (r *Registry) Classes() []string {
	return append([]string(nil), r.classes...)
}

// Edges edges of class, in method scan order
func (r *Registry) Edges(class string) []Edge {
	return append([]Edge(nil), r.edges[class]...)
}

// Reverse edges declared on from targeting to
func (r *Registry) Reverse(from, to string) []Edge {
	var result []Edge
	for _, edge := range r.edges[from] {
		if edge.Target == to {
			result = append(result, edge)
		}
	}
	return result
}

// Len edges count
func (r *Registry) Len() int {
	return r.len
}

// Each iterate classes in registry order
func (r *Registry) Each(fc func(class string, edges []Edge)) {
	for _, class := range r.classes {
		fc(class, r.Edges(class))
	}
}
