package model

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/modelcheck/relation"
)

// Relation is satisfied by values returned from relation methods
type Relation interface {
	Kind() relation.Kind
	// Target related model type
	Target() reflect.Type
	// FetchAll runs the relation query, returns a Collection
	FetchAll(ctx context.Context) (interface{}, error)
}

// RelationOption customize relationship keys
type RelationOption func(*Relationship)

// ForeignKey column holding the reference, lives on the owner for BelongsTo, on the target otherwise
func ForeignKey(column string) RelationOption {
	return func(rel *Relationship) {
		rel.foreignKey = column
	}
}

// OwnerKey referenced column, the target's key for BelongsTo and MorphTo, the owner's key otherwise
func OwnerKey(column string) RelationOption {
	return func(rel *Relationship) {
		rel.ownerKey = column
	}
}

// LocalKey alias of OwnerKey for HasOne and HasMany
func LocalKey(column string) RelationOption {
	return OwnerKey(column)
}

// JoinTable pivot table of BelongsToMany
func JoinTable(table string) RelationOption {
	return func(rel *Relationship) {
		rel.joinTable = table
	}
}

// PivotKeys pivot columns referencing the owner and the target of BelongsToMany
func PivotKeys(foreignPivotKey, relatedPivotKey string) RelationOption {
	return func(rel *Relationship) {
		rel.foreignPivotKey = foreignPivotKey
		rel.relatedPivotKey = relatedPivotKey
	}
}

// ThroughKeys firstKey on the intermediate table referencing the owner, secondKey on the target referencing the intermediate
func ThroughKeys(firstKey, secondKey string) RelationOption {
	return func(rel *Relationship) {
		rel.firstKey = firstKey
		rel.secondKey = secondKey
	}
}

// Relationship relation between an owner model value and a target model type
type Relationship struct {
	kind       relation.Kind
	base       *Base
	owner      reflect.Type
	target     reflect.Type
	through    reflect.Type
	morphName  string
	morphTypes []reflect.Type

	foreignKey, ownerKey             string
	joinTable                        string
	foreignPivotKey, relatedPivotKey string
	firstKey, secondKey              string
}

func (rel *Relationship) Kind() relation.Kind {
	return rel.kind
}

func (rel *Relationship) Target() reflect.Type {
	return rel.target
}

// Owner model type declaring the relation, nil if the model is not bound
func (rel *Relationship) Owner() reflect.Type {
	return rel.owner
}

// Through intermediate model type of through relations
func (rel *Relationship) Through() reflect.Type {
	return rel.through
}

func (rel *Relationship) String() string {
	return fmt.Sprintf("%v(%v)", rel.kind.Name(), rel.target)
}

// FetchAll runs the relation query for the owner value, returns *Records of Target
func (rel *Relationship) FetchAll(ctx context.Context) (interface{}, error) {
	stmt, err := rel.Statement()
	if err != nil {
		return nil, err
	}
	return rel.base.runtime.query(ctx, stmt, rel.target)
}

// Statement build the relation query without executing it
func (rel *Relationship) Statement() (*Statement, error) {
	if rel.base == nil || rel.base.runtime == nil || rel.owner == nil {
		return nil, ErrNoConnection
	}
	if rel.target == nil {
		return nil, fmt.Errorf("%w: %v on %v", ErrMissingTarget, rel.kind.Name(), rel.owner)
	}

	rt := rel.base.runtime
	ownerSchema, err := rt.Schema(rel.owner)
	if err != nil {
		return nil, err
	}
	targetSchema, err := rt.Schema(rel.target)
	if err != nil {
		return nil, err
	}

	var (
		stmt  = &Statement{Dialect: rt.Dialect}
		namer = rt.NamingStrategy
	)

	switch rel.kind {
	case relation.BelongsTo:
		foreignKey := orDefault(rel.foreignKey, namer.ForeignKey(targetSchema.Name, targetSchema.PrimaryColumn()))
		ownerKey := orDefault(rel.ownerKey, targetSchema.PrimaryColumn())
		selectFrom(stmt, targetSchema).WriteString(" WHERE ").WriteColumn(targetSchema.Table, ownerKey)
		stmt.WriteString(" IN (SELECT ").WriteColumn(ownerSchema.Table, foreignKey).
			WriteString(" FROM ").WriteQuoted(ownerSchema.Table).
			WriteString(" WHERE ").WriteColumn(ownerSchema.Table, ownerSchema.PrimaryColumn()).WriteString(" = ").
			AddVar(rel.ownerValue(ownerSchema, ownerSchema.PrimaryColumn())).WriteString(")")
	case relation.HasOne, relation.HasMany:
		foreignKey := orDefault(rel.foreignKey, namer.ForeignKey(ownerSchema.Name, ownerSchema.PrimaryColumn()))
		localKey := orDefault(rel.ownerKey, ownerSchema.PrimaryColumn())
		selectFrom(stmt, targetSchema).WriteString(" WHERE ").WriteColumn(targetSchema.Table, foreignKey).
			WriteString(" = ").AddVar(rel.ownerValue(ownerSchema, localKey))
	case relation.MorphOne, relation.MorphMany:
		idColumn, typeColumn := namer.MorphColumns(rel.morphName)
		idColumn = orDefault(rel.foreignKey, idColumn)
		localKey := orDefault(rel.ownerKey, ownerSchema.PrimaryColumn())
		selectFrom(stmt, targetSchema).WriteString(" WHERE ").WriteColumn(targetSchema.Table, typeColumn).
			WriteString(" = ").AddVar(ownerSchema.Table).
			WriteString(" AND ").WriteColumn(targetSchema.Table, idColumn).
			WriteString(" = ").AddVar(rel.ownerValue(ownerSchema, localKey))
	case relation.MorphTo:
		idColumn, typeColumn := namer.MorphColumns(rel.morphName)
		idColumn = orDefault(rel.foreignKey, idColumn)
		ownerKey := orDefault(rel.ownerKey, targetSchema.PrimaryColumn())
		selectFrom(stmt, targetSchema).WriteString(" WHERE ").WriteColumn(targetSchema.Table, ownerKey)
		stmt.WriteString(" IN (SELECT ").WriteColumn(ownerSchema.Table, idColumn).
			WriteString(" FROM ").WriteQuoted(ownerSchema.Table).
			WriteString(" WHERE ").WriteColumn(ownerSchema.Table, ownerSchema.PrimaryColumn()).WriteString(" = ").
			AddVar(rel.ownerValue(ownerSchema, ownerSchema.PrimaryColumn())).
			WriteString(" AND ").WriteColumn(ownerSchema.Table, typeColumn).WriteString(" = ").
			AddVar(targetSchema.Table).WriteString(")")
	case relation.BelongsToMany:
		joinTable := orDefault(rel.joinTable, namer.JoinTableName(ownerSchema.Name, targetSchema.Name))
		foreignPivotKey := orDefault(rel.foreignPivotKey, namer.ForeignKey(ownerSchema.Name, ownerSchema.PrimaryColumn()))
		relatedPivotKey := orDefault(rel.relatedPivotKey, namer.ForeignKey(targetSchema.Name, targetSchema.PrimaryColumn()))
		selectFrom(stmt, targetSchema).WriteString(" INNER JOIN ").WriteQuoted(joinTable).
			WriteString(" ON ").WriteColumn(joinTable, relatedPivotKey).
			WriteString(" = ").WriteColumn(targetSchema.Table, targetSchema.PrimaryColumn()).
			WriteString(" WHERE ").WriteColumn(joinTable, foreignPivotKey).
			WriteString(" = ").AddVar(rel.ownerValue(ownerSchema, ownerSchema.PrimaryColumn()))
	case relation.HasOneThrough, relation.HasManyThrough:
		if rel.through == nil {
			return nil, fmt.Errorf("%w: through model of %v on %v", ErrMissingTarget, rel.kind.Name(), rel.owner)
		}
		throughSchema, err := rt.Schema(rel.through)
		if err != nil {
			return nil, err
		}
		firstKey := orDefault(rel.firstKey, namer.ForeignKey(ownerSchema.Name, ownerSchema.PrimaryColumn()))
		secondKey := orDefault(rel.secondKey, namer.ForeignKey(throughSchema.Name, throughSchema.PrimaryColumn()))
		selectFrom(stmt, targetSchema).WriteString(" INNER JOIN ").WriteQuoted(throughSchema.Table).
			WriteString(" ON ").WriteColumn(throughSchema.Table, throughSchema.PrimaryColumn()).
			WriteString(" = ").WriteColumn(targetSchema.Table, secondKey).
			WriteString(" WHERE ").WriteColumn(throughSchema.Table, firstKey).
			WriteString(" = ").AddVar(rel.ownerValue(ownerSchema, ownerSchema.PrimaryColumn()))
	default:
		return nil, fmt.Errorf("unsupported relation kind %q", rel.kind)
	}

	switch rel.kind {
	case relation.HasOne, relation.MorphOne, relation.HasOneThrough:
		stmt.WriteString(" LIMIT 1")
	}

	return stmt, stmt.Error()
}

func selectFrom(stmt *Statement, schema *Schema) *Statement {
	return stmt.WriteString("SELECT ").WriteString(stmt.Dialect.Quote(schema.Table + ".*")).
		WriteString(" FROM ").WriteQuoted(schema.Table)
}

// ownerValue value of the owner's column, nil when the owner has no such field
func (rel *Relationship) ownerValue(schema *Schema, column string) interface{} {
	field := schema.LookUpField(column)
	if field == nil || !rel.base.owner.IsValid() {
		return nil
	}
	return rel.base.owner.Elem().FieldByIndex(field.Index).Interface()
}

// resolveMorphTarget target of MorphTo, picked by the owner's `<Name>Type` value,
// the first declared type otherwise and the owner itself when no type declared
func (rel *Relationship) resolveMorphTarget() reflect.Type {
	if rel.base.owner.IsValid() {
		if typeField := rel.base.owner.Elem().FieldByName(rel.morphName + "Type"); typeField.IsValid() && typeField.Kind() == reflect.String {
			if value := typeField.String(); value != "" {
				var namer Namer = NamingStrategy{}
				if rel.base.runtime != nil {
					namer = rel.base.runtime.NamingStrategy
				}
				for _, typ := range rel.morphTypes {
					if value == typ.Name() || value == namer.TableName(typ.Name()) {
						return typ
					}
				}
			}
		}
	}

	if len(rel.morphTypes) > 0 {
		return rel.morphTypes[0]
	}
	return rel.owner
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}
