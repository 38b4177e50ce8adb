package logger

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

func isPrintable(s []byte) bool {
	for _, r := range s {
		if !unicode.IsPrint(rune(r)) {
			return false
		}
	}
	return true
}

// ExplainSQL inline vars into sql, numericPlaceholder matches `$1` style bind vars when not nil
func ExplainSQL(sql string, numericPlaceholder *regexp.Regexp, escaper string, vars ...interface{}) string {
	formatted := make([]string, len(vars))
	for idx, v := range vars {
		if valuer, ok := v.(driver.Valuer); ok {
			v, _ = valuer.Value()
		}

		switch v := v.(type) {
		case bool:
			formatted[idx] = strconv.FormatBool(v)
		case time.Time:
			formatted[idx] = escaper + v.Format("2006-01-02 15:04:05") + escaper
		case *time.Time:
			if v == nil {
				formatted[idx] = "NULL"
			} else {
				formatted[idx] = escaper + v.Format("2006-01-02 15:04:05") + escaper
			}
		case []byte:
			if isPrintable(v) {
				formatted[idx] = escaper + strings.ReplaceAll(string(v), escaper, "\\"+escaper) + escaper
			} else {
				formatted[idx] = escaper + "<binary>" + escaper
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			formatted[idx] = fmt.Sprintf("%d", v)
		case float64, float32:
			formatted[idx] = fmt.Sprintf("%.6f", v)
		case string:
			formatted[idx] = escaper + strings.ReplaceAll(v, escaper, "\\"+escaper) + escaper
		default:
			if v == nil {
				formatted[idx] = "NULL"
			} else {
				formatted[idx] = escaper + strings.ReplaceAll(fmt.Sprint(v), escaper, "\\"+escaper) + escaper
			}
		}
	}

	if numericPlaceholder == nil {
		var (
			buf    strings.Builder
			varIdx int
		)
		for _, c := range []byte(sql) {
			if c == '?' && varIdx < len(formatted) {
				buf.WriteString(formatted[varIdx])
				varIdx++
				continue
			}
			buf.WriteByte(c)
		}
		return buf.String()
	}

	return numericPlaceholder.ReplaceAllStringFunc(sql, func(placeholder string) string {
		match := numericPlaceholder.FindStringSubmatch(placeholder)
		if len(match) < 2 {
			return placeholder
		}
		if n, err := strconv.Atoi(match[1]); err == nil && n >= 1 && n <= len(formatted) {
			return formatted[n-1]
		}
		return placeholder
	})
}
