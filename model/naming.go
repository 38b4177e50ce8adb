package model

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Namer namer interface
type Namer interface {
	TableName(typeName string) string
	ColumnName(fieldName string) string
	ForeignKey(typeName, primaryKey string) string
	JoinTableName(ownerName, targetName string) string
	MorphColumns(name string) (idColumn, typeColumn string)
}

// NamingStrategy tables, columns naming strategy
type NamingStrategy struct {
	TablePrefix   string
	SingularTable bool
}

// TableName convert type name to table name, `ParentModel` => `parent_models`
func (ns NamingStrategy) TableName(str string) string {
	if ns.SingularTable {
		return ns.TablePrefix + toDBName(str)
	}
	return ns.TablePrefix + inflection.Plural(toDBName(str))
}

// ColumnName convert field name to column name
func (ns NamingStrategy) ColumnName(str string) string {
	return toDBName(str)
}

// ForeignKey column referencing typeName's primary key, `ParentModel`, `id` => `parent_model_id`
func (ns NamingStrategy) ForeignKey(typeName, primaryKey string) string {
	return fmt.Sprintf("%s_%s", toDBName(typeName), primaryKey)
}

// JoinTableName pivot table of two models, singular names in alphabetical order, `Role`, `User` => `role_user`
func (ns NamingStrategy) JoinTableName(ownerName, targetName string) string {
	names := []string{inflection.Singular(toDBName(ownerName)), inflection.Singular(toDBName(targetName))}
	sort.Strings(names)
	return ns.TablePrefix + strings.Join(names, "_")
}

// MorphColumns polymorphic columns, `Commentable` => `commentable_id`, `commentable_type`
func (ns NamingStrategy) MorphColumns(name string) (string, string) {
	name = toDBName(name)
	return name + "_id", name + "_type"
}

var (
	smap sync.Map
	// https://github.com/golang/lint/blob/master/lint.go#L770
	commonInitialisms         = []string{"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS"}
	commonInitialismsReplacer *strings.Replacer
)

func init() {
	title := cases.Title(language.Und)
	var commonInitialismsForReplacer []string
	for _, initialism := range commonInitialisms {
		commonInitialismsForReplacer = append(commonInitialismsForReplacer, initialism, title.String(strings.ToLower(initialism)))
	}
	commonInitialismsReplacer = strings.NewReplacer(commonInitialismsForReplacer...)
}

func toDBName(name string) string {
	if name == "" {
		return ""
	} else if v, ok := smap.Load(name); ok {
		return v.(string)
	}

	var (
		value                          = commonInitialismsReplacer.Replace(name)
		buf                            strings.Builder
		lastCase, nextCase, nextNumber bool // upper case == true
		curCase                        = value[0] <= 'Z' && value[0] >= 'A'
	)

	for i, v := range value[:len(value)-1] {
		nextCase = value[i+1] <= 'Z' && value[i+1] >= 'A'
		nextNumber = value[i+1] >= '0' && value[i+1] <= '9'

		if curCase {
			if lastCase && (nextCase || nextNumber) {
				buf.WriteRune(v + 32)
			} else {
				if i > 0 && value[i-1] != '_' && value[i+1] != '_' {
					buf.WriteByte('_')
				}
				buf.WriteRune(v + 32)
			}
		} else {
			buf.WriteRune(v)
		}

		lastCase = curCase
		curCase = nextCase
	}

	if curCase {
		if !lastCase && len(value) > 1 {
			buf.WriteByte('_')
		}
		buf.WriteByte(value[len(value)-1] + 32)
	} else {
		buf.WriteByte(value[len(value)-1])
	}

	result := buf.String()
	smap.Store(name, result)
	return result
}
