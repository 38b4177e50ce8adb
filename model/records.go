package model

import "reflect"

// Collection ordered result set of a single class
type Collection interface {
	Len() int
	Class() reflect.Type
}

// Records collection returned by Relationship.FetchAll, items are pointers to Class
type Records struct {
	class reflect.Type
	items []interface{}
}

// NewRecords build a collection of class
func NewRecords(class reflect.Type, items ...interface{}) *Records {
	return &Records{class: modelType(class), items: items}
}

func (r *Records) Len() int {
	return len(r.items)
}

func (r *Records) Class() reflect.Type {
	return r.class
}

// Items all records
func (r *Records) Items() []interface{} {
	return r.items
}

// At returns the idx-th record
func (r *Records) At(idx int) interface{} {
	return r.items[idx]
}
