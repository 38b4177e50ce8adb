package model

import "errors"

var (
	// ErrInvalidTable invalid table name
	ErrInvalidTable = errors.New("invalid table name")
	// ErrInvalidIdentifier invalid table or column name
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrUnaddressable unaddressable value
	ErrUnaddressable = errors.New("using unaddressable value")
	// ErrUnsupportedModel value is not a struct embedding model.Base
	ErrUnsupportedModel = errors.New("unsupported model")
	// ErrNoConnection model is not bound to a runtime with a database connection
	ErrNoConnection = errors.New("model is not bound to a database connection")
	// ErrMissingTarget relation has no target model
	ErrMissingTarget = errors.New("relation target model required")
)
