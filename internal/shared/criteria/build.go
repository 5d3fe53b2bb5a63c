package criteria

import (
	"fmt"
	"reflect"
	"strings"
)

// builder accumulates WHERE clauses with positional args.
type builder struct {
	clauses []string
	args    []any
	next    int
}

func (b *builder) add(clause string, args ...any) {
	placeholders := make([]any, len(args))
	for i := range args {
		placeholders[i] = b.next
		b.next++
		b.args = append(b.args, args[i])
	}
	b.clauses = append(b.clauses, fmt.Sprintf(clause, placeholders...))
}

func (b *builder) raw(clause string) {
	b.clauses = append(b.clauses, clause)
}

// Build walks a criteria struct and returns the combined WHERE fragment
// (without the leading WHERE keyword) and its positional args. startArg is
// the index of the first placeholder, so repositories can prepend their own
// args. An empty fragment means no filter condition was supplied.
func Build(src any, startArg int) (string, []any) {
	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	rt := rv.Type()

	b := &builder{next: startArg}
	for i := 0; i < rt.NumField(); i++ {
		col := rt.Field(i).Tag.Get("db")
		if col == "" {
			continue
		}
		switch f := rv.Field(i).Addr().Interface().(type) {
		case *StringFilter:
			buildString(b, col, f)
		case *LongFilter:
			buildRange(b, col, f.Equals, f.NotEquals, anySlice(f.In), f.Specified,
				f.GreaterThan, f.GreaterThanOrEqual, f.LessThan, f.LessThanOrEqual)
		case *IntFilter:
			buildRange(b, col, f.Equals, f.NotEquals, anySlice(f.In), f.Specified,
				f.GreaterThan, f.GreaterThanOrEqual, f.LessThan, f.LessThanOrEqual)
		case *FloatFilter:
			buildRange(b, col, f.Equals, f.NotEquals, anySlice(f.In), f.Specified,
				f.GreaterThan, f.GreaterThanOrEqual, f.LessThan, f.LessThanOrEqual)
		case *TimeFilter:
			buildRange(b, col, f.Equals, f.NotEquals, anySlice(f.In), f.Specified,
				f.GreaterThan, f.GreaterThanOrEqual, f.LessThan, f.LessThanOrEqual)
		case *BoolFilter:
			buildBool(b, col, f)
		}
	}

	return strings.Join(b.clauses, " AND "), b.args
}

// anySlice keeps pgx happy: the slice itself is the single arg for = ANY($n).
func anySlice[T any](in []T) any {
	if in == nil {
		return nil
	}
	return in
}

func buildString(b *builder, col string, f *StringFilter) {
	if f.Equals != nil {
		b.add(col+" = $%d", *f.Equals)
	}
	if f.NotEquals != nil {
		b.add(col+" <> $%d", *f.NotEquals)
	}
	if f.In != nil {
		b.add(col+" = ANY($%d)", f.In)
	}
	if f.Contains != nil {
		b.add(col+" ILIKE $%d", "%"+escapeLike(*f.Contains)+"%")
	}
	if f.DoesNotContain != nil {
		b.add(col+" NOT ILIKE $%d", "%"+escapeLike(*f.DoesNotContain)+"%")
	}
	buildSpecified(b, col, f.Specified)
}

func buildBool(b *builder, col string, f *BoolFilter) {
	if f.Equals != nil {
		b.add(col+" = $%d", *f.Equals)
	}
	if f.NotEquals != nil {
		b.add(col+" <> $%d", *f.NotEquals)
	}
	if f.In != nil {
		b.add(col+" = ANY($%d)", f.In)
	}
	buildSpecified(b, col, f.Specified)
}

// buildRange covers every orderable filter; nil slots are skipped. eq/neq/gt
// args arrive as typed pointers wrapped in any, so a plain nil check works.
func buildRange(b *builder, col string, eq, neq, in any, specified *bool, gt, gte, lt, lte any) {
	if !isNil(eq) {
		b.add(col+" = $%d", deref(eq))
	}
	if !isNil(neq) {
		b.add(col+" <> $%d", deref(neq))
	}
	if !isNil(in) {
		b.add(col+" = ANY($%d)", in)
	}
	if !isNil(gt) {
		b.add(col+" > $%d", deref(gt))
	}
	if !isNil(gte) {
		b.add(col+" >= $%d", deref(gte))
	}
	if !isNil(lt) {
		b.add(col+" < $%d", deref(lt))
	}
	if !isNil(lte) {
		b.add(col+" <= $%d", deref(lte))
	}
	buildSpecified(b, col, specified)
}

func buildSpecified(b *builder, col string, specified *bool) {
	if specified == nil {
		return
	}
	if *specified {
		b.raw(col + " IS NOT NULL")
	} else {
		b.raw(col + " IS NULL")
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Slice) && rv.IsNil()
}

func deref(v any) any {
	return reflect.ValueOf(v).Elem().Interface()
}

// escapeLike neutralizes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
