package utils

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

var modelcheckSourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// compatible solution to get modelcheck source directory with various operating systems
	modelcheckSourceDir = sourceDir(file)
}

func sourceDir(file string) string {
	dir := filepath.Dir(file)
	dir = filepath.Dir(dir)

	s := filepath.Dir(dir)
	if filepath.Base(s) != "gorm.io" {
		s = dir
	}
	return filepath.ToSlash(s) + "/"
}

// CallerFrame retrieves the first relevant stack frame outside of modelcheck's internal implementation files.
// It skips:
//   - modelcheck's core source files (identified by modelcheckSourceDir prefix)
//   - Exclude test files (*_test.go)
//   - go-generated code (*.gen.go)
func CallerFrame() runtime.Frame {
	pcs := [13]uintptr{}
	// the third caller usually from modelcheck internal
	len := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:len])
	for i := 0; i < len; i++ {
		// second return value is "more", not "ok"
		frame, _ := frames.Next()
		if (!strings.HasPrefix(frame.File, modelcheckSourceDir) ||
			strings.HasSuffix(frame.File, "_test.go")) && !strings.HasSuffix(frame.File, ".gen.go") {
			return frame
		}
	}

	return runtime.Frame{}
}

// FileWithLineNum return the file name and line number of the current file
func FileWithLineNum() string {
	frame := CallerFrame()
	if frame.PC != 0 {
		return string(strconv.AppendInt(append([]byte(frame.File), ':'), int64(frame.Line), 10))
	}

	return ""
}

func IsValidDBNameChar(c rune) bool {
	return !unicode.IsLetter(c) && !unicode.IsNumber(c) && c != '.' && c != '*' && c != '_' && c != '$' && c != '@'
}

// IsValidIdentifier check str could be used as a table or column name
func IsValidIdentifier(str string) bool {
	if str == "" || len(str) > 128 {
		return false
	}
	fields := strings.FieldsFunc(str, IsValidDBNameChar)
	return len(fields) == 1 && fields[0] == str && !strings.ContainsAny(str, "*$@")
}

func Contains(elems []string, elem string) bool {
	for _, e := range elems {
		if elem == e {
			return true
		}
	}
	return false
}

// Indirect dereference pointer types
func Indirect(typ reflect.Type) reflect.Type {
	for typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ
}

// TypeName fully qualified type name, e.g. `gorm.io/modelcheck/model.Base`
func TypeName(typ reflect.Type) string {
	typ = Indirect(typ)
	if typ == nil {
		return "<nil>"
	}
	if typ.PkgPath() == "" || typ.Name() == "" {
		return typ.String()
	}
	return typ.PkgPath() + "." + typ.Name()
}

// HasPathPrefix check pkgPath equals prefix or is a sub package of it
func HasPathPrefix(pkgPath, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	return pkgPath == prefix || strings.HasPrefix(pkgPath, prefix+"/")
}
