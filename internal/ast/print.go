package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders e in the user-facing printed form from spec.md §6
// "Printed forms". It never recurses into Child/Next — callers print a
// single evaluated result, not a sequence.
func Print(e *Expr) string {
	if e == nil {
		return "[nil]"
	}
	switch e.Kind {
	case KindNil:
		return "[nil]"
	case KindContainerExp:
		return "[expression]"
	case KindLazyExp:
		return "[lazy expression]"
	case KindInt:
		return strconv.FormatInt(e.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(e.Float, 'f', 6, 64)
	case KindString:
		return e.Str
	case KindArray:
		return "[array]"
	case KindDate:
		return FormatDate(e.Unix, DefaultDateFormat)
	case KindObject:
		return "[object]"
	case KindFunction:
		return "[function]"
	case KindType:
		return "::" + e.Str
	default:
		if e.Kind >= CompositeBase {
			return "::" + e.Str
		}
		return "[error]"
	}
}

// Dump renders the raw parsed tree (used by "tap parse --dump-ast"); it is
// a debugging aid, not a contract surface.
func Dump(e *Expr) string {
	var sb strings.Builder
	dump(&sb, e, 0)
	return sb.String()
}

func dump(sb *strings.Builder, e *Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	for cur := e; cur != nil; cur = cur.Next {
		fmt.Fprintf(sb, "%s%s", indent, cur.Kind)
		switch cur.Kind {
		case KindInt:
			fmt.Fprintf(sb, "(%d)", cur.Int)
		case KindFloat:
			fmt.Fprintf(sb, "(%g)", cur.Float)
		case KindString:
			fmt.Fprintf(sb, "(%q flag=%d)", cur.Str, cur.StrFlag)
		}
		sb.WriteByte('\n')
		if cur.Child != nil {
			dump(sb, cur.Child, depth+1)
		}
	}
}
