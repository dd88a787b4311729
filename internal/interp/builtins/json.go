package builtins

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// jsonObjectType names the ad hoc composite type json-decode constructs
// for decoded JSON objects (SPEC_FULL.md component M): no required
// properties and an empty template; each decoded object carries its keys
// as its own untyped properties.
const jsonObjectType = "__json"

// registerJSON installs json-encode/json-decode (SPEC_FULL.md component
// M): a domain-stack bridge with no counterpart in the original, built
// from tidwall/gjson (decode), tidwall/sjson (incremental encode), and
// tidwall/pretty (pretty.Ugly compacts the encoded document).
func registerJSON(it *interp.Interp) {
	reg(it, "json-encode", 1, 1, nil, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		doc, err := encodeJSON(args[0])
		if err != nil {
			return argErr(it, args, err.Error())
		}
		return interp.StringValue(string(pretty.Ugly([]byte(doc))))
	})
	reg(it, "json-decode", 1, 1, k1(ast.KindString), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		if !gjson.Valid(args[0].Str) {
			return argErr(it, args, "invalid JSON")
		}
		return decodeJSON(it, gjson.Parse(args[0].Str))
	})
}

func encodeJSON(v *ast.Expr) (string, error) {
	switch v.Kind {
	case ast.KindNil:
		return "null", nil
	case ast.KindInt:
		return strconv.FormatInt(v.Int, 10), nil
	case ast.KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	case ast.KindString:
		wrapped, err := sjson.Set("{}", "x", v.Str)
		if err != nil {
			return "", err
		}
		return gjson.Get(wrapped, "x").Raw, nil
	case ast.KindArray:
		doc := "[]"
		var err error
		for i := 0; i < v.Arr.Len(); i++ {
			elemDoc, e := encodeJSON(v.Arr.At(i))
			if e != nil {
				return "", e
			}
			doc, err = sjson.SetRaw(doc, strconv.Itoa(i), elemDoc)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case ast.KindObject:
		doc := "{}"
		var err error
		for p := v.Obj.Props; p != nil; p = p.Next {
			valDoc, e := encodeJSON(p.Value)
			if e != nil {
				return "", e
			}
			doc, err = sjson.SetRaw(doc, p.Name, valDoc)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return strconv.Quote(ast.Print(v)), nil
	}
}

func decodeJSON(it *interp.Interp, r gjson.Result) *ast.Expr {
	switch r.Type {
	case gjson.Null:
		return interp.NilValue()
	case gjson.True:
		return interp.IntValue(1)
	case gjson.False:
		return interp.IntValue(0)
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return interp.IntValue(int64(r.Num))
		}
		return interp.FloatValue(r.Num)
	case gjson.String:
		return interp.StringValue(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []*ast.Expr
			for _, item := range r.Array() {
				elems = append(elems, decodeJSON(it, item))
			}
			return interp.ArrayValue(elems)
		}
		return decodeJSONObject(it, r)
	default:
		return interp.NilValue()
	}
}

func decodeJSONObject(it *interp.Interp, r gjson.Result) *ast.Expr {
	ct, ok := it.Types.Lookup(jsonObjectType)
	if !ok {
		ct = it.Types.Define(jsonObjectType, nil, nil, nil)
	}
	obj := &ast.Object{TypeID: ct.ID}
	var tail *ast.Property
	r.ForEach(func(key, value gjson.Result) bool {
		np := &ast.Property{Name: key.String(), Types: []ast.Kind{ast.AnyKind}, Value: decodeJSON(it, value)}
		if obj.Props == nil {
			obj.Props = np
		} else {
			tail.Next = np
		}
		tail = np
		return true
	})
	return &ast.Expr{Kind: ast.KindObject, Obj: obj}
}
