// Package criteria implements per-field dynamic filtering for list and count
// endpoints. Each domain declares a criteria struct whose fields are filter
// types from this package, tagged with the query parameter name and the
// backing column:
//
//	type Criteria struct {
//	    ID    criteria.LongFilter   `param:"id" db:"id"`
//	    Title criteria.StringFilter `param:"title" db:"title"`
//	}
//
// Bind populates the struct from flat query parameters of the form
// field.operator=value (title.contains=go, pageCount.greaterThan=100,
// id.in=1,2,3). Build turns the populated struct into a SQL WHERE fragment
// with positional args; all conditions are combined with AND.
package criteria

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Operator suffixes accepted in query parameters.
const (
	opEquals             = "equals"
	opNotEquals          = "notEquals"
	opIn                 = "in"
	opSpecified          = "specified"
	opContains           = "contains"
	opDoesNotContain     = "doesNotContain"
	opGreaterThan        = "greaterThan"
	opGreaterThanOrEqual = "greaterThanOrEqual"
	opLessThan           = "lessThan"
	opLessThanOrEqual    = "lessThanOrEqual"
)

// StringFilter matches text columns.
type StringFilter struct {
	Equals         *string
	NotEquals      *string
	In             []string
	Specified      *bool
	Contains       *string
	DoesNotContain *string
}

// LongFilter matches bigint columns, including foreign keys.
type LongFilter struct {
	Equals             *int64
	NotEquals          *int64
	In                 []int64
	Specified          *bool
	GreaterThan        *int64
	GreaterThanOrEqual *int64
	LessThan           *int64
	LessThanOrEqual    *int64
}

// IntFilter matches integer columns.
type IntFilter struct {
	Equals             *int
	NotEquals          *int
	In                 []int
	Specified          *bool
	GreaterThan        *int
	GreaterThanOrEqual *int
	LessThan           *int
	LessThanOrEqual    *int
}

// FloatFilter matches numeric columns.
type FloatFilter struct {
	Equals             *float64
	NotEquals          *float64
	In                 []float64
	Specified          *bool
	GreaterThan        *float64
	GreaterThanOrEqual *float64
	LessThan           *float64
	LessThanOrEqual    *float64
}

// BoolFilter matches boolean columns.
type BoolFilter struct {
	Equals    *bool
	NotEquals *bool
	In        []bool
	Specified *bool
}

// TimeFilter matches date and timestamp columns. Values are parsed as
// RFC 3339 timestamps, falling back to plain dates (2006-01-02).
type TimeFilter struct {
	Equals             *time.Time
	NotEquals          *time.Time
	In                 []time.Time
	Specified          *bool
	GreaterThan        *time.Time
	GreaterThanOrEqual *time.Time
	LessThan           *time.Time
	LessThanOrEqual    *time.Time
}

// ErrBadFilter wraps a parse failure for a single query parameter so the
// handler can surface it as a validation error.
type ErrBadFilter struct {
	Param string
	Value string
}

func (e *ErrBadFilter) Error() string {
	return fmt.Sprintf("invalid filter value %q for parameter %q", e.Value, e.Param)
}

// Bind fills dst (a pointer to a criteria struct) from query parameters.
// Unknown parameters are ignored; malformed values return *ErrBadFilter.
func Bind(values url.Values, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("criteria: Bind requires a pointer to struct, got %T", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		param := rt.Field(i).Tag.Get("param")
		if param == "" {
			continue
		}

		var err error
		switch f := rv.Field(i).Addr().Interface().(type) {
		case *StringFilter:
			err = bindString(values, param, f)
		case *LongFilter:
			err = bindLong(values, param, f)
		case *IntFilter:
			err = bindInt(values, param, f)
		case *FloatFilter:
			err = bindFloat(values, param, f)
		case *BoolFilter:
			err = bindBool(values, param, f)
		case *TimeFilter:
			err = bindTime(values, param, f)
		default:
			err = fmt.Errorf("criteria: unsupported filter type %T for %q", f, param)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// lookup returns the raw values for param.op, supporting both repeated
// parameters (id.in=1&id.in=2) and comma-separated lists (id.in=1,2).
func lookup(values url.Values, param, op string) []string {
	raw, ok := values[param+"."+op]
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return out
}

func single(values url.Values, param, op string) (string, bool) {
	vs := lookup(values, param, op)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func bindSpecified(values url.Values, param string, dst **bool) error {
	raw, ok := single(values, param, opSpecified)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return &ErrBadFilter{Param: param + "." + opSpecified, Value: raw}
	}
	*dst = &b
	return nil
}

func bindString(values url.Values, param string, f *StringFilter) error {
	if v, ok := single(values, param, opEquals); ok {
		f.Equals = &v
	}
	if v, ok := single(values, param, opNotEquals); ok {
		f.NotEquals = &v
	}
	if vs := lookup(values, param, opIn); vs != nil {
		f.In = vs
	}
	if v, ok := single(values, param, opContains); ok {
		f.Contains = &v
	}
	if v, ok := single(values, param, opDoesNotContain); ok {
		f.DoesNotContain = &v
	}
	return bindSpecified(values, param, &f.Specified)
}

func parseLong(param, op, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ErrBadFilter{Param: param + "." + op, Value: raw}
	}
	return n, nil
}

func bindLong(values url.Values, param string, f *LongFilter) error {
	for _, slot := range []struct {
		op  string
		dst **int64
	}{
		{opEquals, &f.Equals},
		{opNotEquals, &f.NotEquals},
		{opGreaterThan, &f.GreaterThan},
		{opGreaterThanOrEqual, &f.GreaterThanOrEqual},
		{opLessThan, &f.LessThan},
		{opLessThanOrEqual, &f.LessThanOrEqual},
	} {
		raw, ok := single(values, param, slot.op)
		if !ok {
			continue
		}
		n, err := parseLong(param, slot.op, raw)
		if err != nil {
			return err
		}
		*slot.dst = &n
	}
	for _, raw := range lookup(values, param, opIn) {
		n, err := parseLong(param, opIn, raw)
		if err != nil {
			return err
		}
		f.In = append(f.In, n)
	}
	return bindSpecified(values, param, &f.Specified)
}

func bindInt(values url.Values, param string, f *IntFilter) error {
	var lf LongFilter
	if err := bindLong(values, param, &lf); err != nil {
		return err
	}
	conv := func(p *int64) *int {
		if p == nil {
			return nil
		}
		n := int(*p)
		return &n
	}
	f.Equals = conv(lf.Equals)
	f.NotEquals = conv(lf.NotEquals)
	f.GreaterThan = conv(lf.GreaterThan)
	f.GreaterThanOrEqual = conv(lf.GreaterThanOrEqual)
	f.LessThan = conv(lf.LessThan)
	f.LessThanOrEqual = conv(lf.LessThanOrEqual)
	f.Specified = lf.Specified
	for _, n := range lf.In {
		f.In = append(f.In, int(n))
	}
	return nil
}

func parseFloat(param, op, raw string) (float64, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ErrBadFilter{Param: param + "." + op, Value: raw}
	}
	return n, nil
}

func bindFloat(values url.Values, param string, f *FloatFilter) error {
	for _, slot := range []struct {
		op  string
		dst **float64
	}{
		{opEquals, &f.Equals},
		{opNotEquals, &f.NotEquals},
		{opGreaterThan, &f.GreaterThan},
		{opGreaterThanOrEqual, &f.GreaterThanOrEqual},
		{opLessThan, &f.LessThan},
		{opLessThanOrEqual, &f.LessThanOrEqual},
	} {
		raw, ok := single(values, param, slot.op)
		if !ok {
			continue
		}
		n, err := parseFloat(param, slot.op, raw)
		if err != nil {
			return err
		}
		*slot.dst = &n
	}
	for _, raw := range lookup(values, param, opIn) {
		n, err := parseFloat(param, opIn, raw)
		if err != nil {
			return err
		}
		f.In = append(f.In, n)
	}
	return bindSpecified(values, param, &f.Specified)
}

func bindBool(values url.Values, param string, f *BoolFilter) error {
	for _, slot := range []struct {
		op  string
		dst **bool
	}{
		{opEquals, &f.Equals},
		{opNotEquals, &f.NotEquals},
	} {
		raw, ok := single(values, param, slot.op)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &ErrBadFilter{Param: param + "." + slot.op, Value: raw}
		}
		*slot.dst = &b
	}
	for _, raw := range lookup(values, param, opIn) {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &ErrBadFilter{Param: param + "." + opIn, Value: raw}
		}
		f.In = append(f.In, b)
	}
	return bindSpecified(values, param, &f.Specified)
}

func parseTime(param, op, raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, &ErrBadFilter{Param: param + "." + op, Value: raw}
}

func bindTime(values url.Values, param string, f *TimeFilter) error {
	for _, slot := range []struct {
		op  string
		dst **time.Time
	}{
		{opEquals, &f.Equals},
		{opNotEquals, &f.NotEquals},
		{opGreaterThan, &f.GreaterThan},
		{opGreaterThanOrEqual, &f.GreaterThanOrEqual},
		{opLessThan, &f.LessThan},
		{opLessThanOrEqual, &f.LessThanOrEqual},
	} {
		raw, ok := single(values, param, slot.op)
		if !ok {
			continue
		}
		t, err := parseTime(param, slot.op, raw)
		if err != nil {
			return err
		}
		*slot.dst = &t
	}
	for _, raw := range lookup(values, param, opIn) {
		t, err := parseTime(param, opIn, raw)
		if err != nil {
			return err
		}
		f.In = append(f.In, t)
	}
	return bindSpecified(values, param, &f.Specified)
}
