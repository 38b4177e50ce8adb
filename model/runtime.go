package model

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sync"
	"time"

	"gorm.io/modelcheck/logger"
)

// ConnPool db conns pool interface, *sql.DB, *sql.Tx and *sql.Conn satisfy it
type ConnPool interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Config runtime config
type Config struct {
	// Dialect renders relation queries, SQLite by default
	Dialect Dialect
	// NamingStrategy tables, columns naming strategy
	NamingStrategy Namer
	// Logger traces relation queries
	Logger logger.Interface
}

// Runtime binds models to a database connection, relations query through it
type Runtime struct {
	*Config
	ConnPool   ConnPool
	cacheStore *sync.Map
}

// Open initialize runtime, conn could be nil, then every relation query fails with ErrNoConnection
func Open(conn ConnPool, config *Config) *Runtime {
	if config == nil {
		config = &Config{}
	}

	if config.Dialect == nil {
		config.Dialect = SQLite{}
	}

	if config.NamingStrategy == nil {
		config.NamingStrategy = NamingStrategy{}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}

	return &Runtime{Config: config, ConnPool: conn, cacheStore: &sync.Map{}}
}

// New allocate a zero value of class, models are bound to the runtime
func (rt *Runtime) New(class reflect.Type) (reflect.Value, error) {
	typ := modelType(class)
	if typ == nil {
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsupportedModel, class)
	}

	value := reflect.New(typ)
	if m, ok := value.Interface().(Model); ok {
		if err := m.ModelBase().Bind(rt, value.Interface()); err != nil {
			return reflect.Value{}, err
		}
	}
	return value, nil
}

// Schema parse value's schema with the runtime's naming strategy
func (rt *Runtime) Schema(value interface{}) (*Schema, error) {
	return Parse(value, rt.cacheStore, rt.NamingStrategy)
}

func (rt *Runtime) query(ctx context.Context, stmt *Statement, class reflect.Type) (*Records, error) {
	if rt.ConnPool == nil {
		return nil, ErrNoConnection
	}

	schema, err := rt.Schema(class)
	if err != nil {
		return nil, err
	}

	var (
		begin   = time.Now()
		records = &Records{class: schema.ModelType}
		rows    *sql.Rows
	)

	if rows, err = rt.ConnPool.QueryContext(ctx, stmt.SQL(), stmt.Vars...); err == nil {
		err = rt.scan(rows, schema, records)
	}

	rt.Logger.Trace(ctx, begin, func() (string, int64) {
		if err != nil {
			return stmt.Explain(), -1
		}
		return stmt.Explain(), int64(records.Len())
	}, err)

	if err != nil {
		return nil, err
	}
	return records, nil
}

func (rt *Runtime) scan(rows *sql.Rows, schema *Schema, records *Records) error {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}

	fields := make([]*Field, len(columns))
	for idx, column := range columns {
		fields[idx] = schema.FieldsByDBName[column]
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		for idx := range values {
			values[idx] = new(interface{})
		}

		if err := rows.Scan(values...); err != nil {
			return err
		}

		item, err := rt.New(schema.ModelType)
		if err != nil {
			return err
		}

		for idx, field := range fields {
			if field == nil {
				continue
			}
			if err := field.Set(item, *(values[idx].(*interface{}))); err != nil {
				return err
			}
		}
		records.items = append(records.items, item.Interface())
	}

	return rows.Err()
}
