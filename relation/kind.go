package relation

import (
	"fmt"
	"strings"
)

// Kind relation kind
type Kind string

const (
	BelongsTo      Kind = "belongs_to"        // BelongsTo many to one
	HasOne         Kind = "has_one"           // HasOne one to one
	HasMany        Kind = "has_many"          // HasMany one to many
	HasOneOrMany   Kind = "has_one_or_many"   // HasOneOrMany abstract parent of HasOne and HasMany
	MorphTo        Kind = "morph_to"          // MorphTo polymorphic many to one
	MorphOne       Kind = "morph_one"         // MorphOne polymorphic one to one
	MorphMany      Kind = "morph_many"        // MorphMany polymorphic one to many
	MorphOneOrMany Kind = "morph_one_or_many" // MorphOneOrMany abstract parent of MorphOne and MorphMany
	BelongsToMany  Kind = "belongs_to_many"   // BelongsToMany many to many through a pivot table
	HasOneThrough  Kind = "has_one_through"   // HasOneThrough one to one through an intermediate model
	HasManyThrough Kind = "has_many_through"  // HasManyThrough one to many through an intermediate model
)

var kinds = []Kind{
	BelongsTo, HasOne, HasMany, HasOneOrMany,
	MorphTo, MorphOne, MorphMany, MorphOneOrMany,
	BelongsToMany, HasOneThrough, HasManyThrough,
}

// inverses maps a kind to the kinds a back relation may have.
// Through relations have no direct inverse, their set is intentionally empty.
var inverses = map[Kind][]Kind{
	BelongsTo:      {HasOne, HasMany, HasOneOrMany},
	HasOne:         {BelongsTo},
	HasMany:        {BelongsTo},
	HasOneOrMany:   {BelongsTo},
	MorphTo:        {MorphOne, MorphMany, MorphOneOrMany},
	MorphOne:       {MorphTo},
	MorphMany:      {MorphTo},
	MorphOneOrMany: {MorphTo},
	BelongsToMany:  {BelongsToMany},
	HasOneThrough:  {},
	HasManyThrough: {},
}

// Kinds returns every known kind
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Parse parse kind from its name, accepts both `has_many` and `HasMany`
func Parse(name string) (Kind, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
	for _, k := range kinds {
		if strings.ReplaceAll(string(k), "_", "") == normalized {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown relation kind %q", name)
}

// Valid check kind is known
func (k Kind) Valid() bool {
	_, ok := inverses[k]
	return ok
}

// Inverses returns the kinds accepted as back relation of k, empty if k is unknown or unsupported
func (k Kind) Inverses() []Kind {
	set := inverses[k]
	return append(make([]Kind, 0, len(set)), set...)
}

// Accepts check other is a valid back relation kind of k
func (k Kind) Accepts(other Kind) bool {
	for _, inverse := range inverses[k] {
		if inverse == other {
			return true
		}
	}
	return false
}

// IsMorph polymorphic kinds
func (k Kind) IsMorph() bool {
	switch k {
	case MorphTo, MorphOne, MorphMany, MorphOneOrMany:
		return true
	}
	return false
}

// IsThrough kinds reaching the target via an intermediate model
func (k Kind) IsThrough() bool {
	return k == HasOneThrough || k == HasManyThrough
}

// Name camel case name, e.g. HasMany
func (k Kind) Name() string {
	var buf strings.Builder
	for _, part := range strings.Split(string(k), "_") {
		if part == "" {
			continue
		}
		buf.WriteString(strings.ToUpper(part[:1]))
		buf.WriteString(part[1:])
	}
	return buf.String()
}

func (k Kind) String() string {
	return k.Name()
}

// Join join kind names with sep
func Join(ks []Kind, sep string) string {
	names := make([]string, len(ks))
	for idx, k := range ks {
		names[idx] = k.Name()
	}
	return strings.Join(names, sep)
}
