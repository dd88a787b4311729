package builtins

import (
	"time"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerDate installs date overloads (prim_dat.c), using time.Time's
// UTC calendar math in place of the original's hand-rolled
// yearOfDate/monthOfDate routines (source/dates.c) — same field
// semantics, idiomatic Go implementation.
func registerDate(it *interp.Interp) {
	anyDat := k1(ast.KindDate)
	datInt := [][]ast.Kind{{ast.KindDate}, {ast.KindInt}}

	get := func(fn func(time.Time) int64) interp.PrimitiveFunc {
		return func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			return interp.IntValue(fn(toTime(args[0])))
		}
	}
	reg(it, "year", 1, 1, anyDat, get(func(t time.Time) int64 { return int64(t.Year()) }))
	reg(it, "month", 1, 1, anyDat, get(func(t time.Time) int64 { return int64(t.Month()) }))
	reg(it, "day", 1, 1, anyDat, get(func(t time.Time) int64 { return int64(t.Day()) }))
	reg(it, "hour", 1, 1, anyDat, get(func(t time.Time) int64 { return int64(t.Hour()) }))
	reg(it, "minute", 1, 1, anyDat, get(func(t time.Time) int64 { return int64(t.Minute()) }))
	reg(it, "second", 1, 1, anyDat, get(func(t time.Time) int64 { return int64(t.Second()) }))
	reg(it, "week-of-year", 1, 1, anyDat, get(func(t time.Time) int64 {
		_, wk := t.ISOWeek()
		return int64(wk)
	}))
	reg(it, "week-of-month", 1, 1, anyDat, get(func(t time.Time) int64 {
		return int64((t.Day()-1)/7 + 1)
	}))
	reg(it, "day-of-year", 1, 1, anyDat, get(func(t time.Time) int64 { return int64(t.YearDay()) }))
	reg(it, "day-of-week", 1, 1, anyDat, get(func(t time.Time) int64 { return int64(t.Weekday()) }))
	reg(it, "leap-year?", 1, 1, anyDat, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		y := toTime(args[0]).Year()
		return boolValue(y%4 == 0 && (y%100 != 0 || y%400 == 0))
	})
	reg(it, "days-in-month", 1, 1, anyDat, get(func(t time.Time) int64 {
		firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		return int64(firstOfNext.AddDate(0, 0, -1).Day())
	}))

	addPart := func(unit func(t time.Time, n int) time.Time) interp.PrimitiveFunc {
		return func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			t := unit(toTime(args[0]), int(args[1].Int))
			return interp.DateValue(t.Unix())
		}
	}
	reg(it, "+years", 2, 2, datInt, addPart(func(t time.Time, n int) time.Time { return t.AddDate(n, 0, 0) }))
	reg(it, "+months", 2, 2, datInt, addPart(func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) }))
	reg(it, "+days", 2, 2, datInt, addPart(func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }))
	reg(it, "+hours", 2, 2, datInt, addPart(func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Hour) }))
	reg(it, "+minutes", 2, 2, datInt, addPart(func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Minute) }))
	reg(it, "+seconds", 2, 2, datInt, addPart(func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Second) }))

	reg(it, "int", 1, 1, anyDat, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(args[0].Unix)
	})
	reg(it, "integer", 1, 1, anyDat, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(args[0].Unix)
	})
	reg(it, "str", 1, 2, [][]ast.Kind{{ast.KindDate}, {ast.KindString}}, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		format := it.Options.DefaultDateFormat
		if format == "" {
			format = ast.DefaultDateFormat
		}
		if len(args) == 2 {
			format = args[1].Str
		}
		return interp.StringValue(ast.FormatDate(args[0].Unix, format))
	})
	reg(it, "string", 1, 2, [][]ast.Kind{{ast.KindDate}, {ast.KindString}}, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		format := it.Options.DefaultDateFormat
		if format == "" {
			format = ast.DefaultDateFormat
		}
		if len(args) == 2 {
			format = args[1].Str
		}
		return interp.StringValue(ast.FormatDate(args[0].Unix, format))
	})
	reg(it, "dat", 1, 1, anyDat, identity)
	reg(it, "date", 1, 1, anyDat, identity)
	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, anyDat, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			return &ast.Expr{Kind: ast.KindType, TypeID: ast.KindDate, Str: "date"}
		})
	}
}

func toTime(v *ast.Expr) time.Time {
	return time.Unix(v.Unix, 0).UTC()
}

func parseDate(s, layout string) (int64, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
