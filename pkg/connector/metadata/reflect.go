package metadata

import (
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Reflect derives the field surface of a tagged configuration struct.
//
// Recognised struct tags:
//
//	json:"name[,inline]"   property name; "-" skips the field
//	display:"..."          display name (defaults to a humanised name)
//	desc:"..."             description
//	required:"true"
//	default:"..."          parsed according to the field type
//	enum:"a,b,c"           allowed values
//	group:"..."            category; order:"N" orders fields inside it
//	importance:"high"
//	format:"password"      marks string fields as secrets
//	internal:"true"
//	deprecated:"true"
//
// Embedded structs and structs tagged ",inline" are flattened into their parent.
func Reflect(cfg any) ([]Field, error) {
	t := reflect.TypeOf(cfg)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, errors.New(errors.ErrorTypeConfig, "connector configuration must be a struct").
			WithDetail("type", reflect.TypeOf(cfg))
	}
	return reflectStruct(t, map[reflect.Type]bool{})
}

// MustReflect is Reflect for package-level configuration types known to be valid.
func MustReflect(cfg any) []Field {
	fields, err := Reflect(cfg)
	if err != nil {
		panic(err)
	}
	return fields
}

// visiting holds the struct types on the current path; a repeat means the
// type refers to itself.
func reflectStruct(t reflect.Type, visiting map[reflect.Type]bool) ([]Field, error) {
	if visiting[t] {
		return nil, errors.New(errors.ErrorTypeConfig, "recursive configuration type").
			WithDetail("type", t.String())
	}
	visiting[t] = true
	defer delete(visiting, t)

	fields := make([]Field, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		name, inline, skip := jsonName(sf)
		if skip {
			continue
		}

		ft := sf.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		// embedded structs promote their exported fields even when the
		// embedded type itself is unexported
		if !sf.IsExported() && !(sf.Anonymous && ft.Kind() == reflect.Struct) {
			continue
		}

		if (sf.Anonymous || inline) && ft.Kind() == reflect.Struct {
			children, err := reflectStruct(ft, visiting)
			if err != nil {
				return nil, err
			}
			fields = append(fields, children...)
			continue
		}

		f, err := reflectField(sf, name, visiting)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	return fields, nil
}

func reflectField(sf reflect.StructField, name string, visiting map[reflect.Type]bool) (Field, error) {
	f, err := fieldFromType(sf.Type, visiting)
	if err != nil {
		return Field{}, errors.Wrap(err, errors.ErrorTypeConfig, "unsupported configuration field").
			WithDetail("field", name)
	}

	f.Name = name
	f.DisplayName = sf.Tag.Get("display")
	if f.DisplayName == "" {
		f.DisplayName = humanize(name)
	}
	f.Description = sf.Tag.Get("desc")
	f.Required = sf.Tag.Get("required") == "true"
	f.Internal = sf.Tag.Get("internal") == "true"
	f.Deprecated = sf.Tag.Get("deprecated") == "true"
	f.Group = sf.Tag.Get("group")
	f.Importance = Importance(sf.Tag.Get("importance"))

	if order := sf.Tag.Get("order"); order != "" {
		n, err := strconv.Atoi(order)
		if err != nil {
			return Field{}, errors.Wrap(err, errors.ErrorTypeConfig, "invalid order tag").
				WithDetail("field", name)
		}
		f.GroupOrder = n
	}

	if sf.Tag.Get("format") == "password" {
		if f.Type != TypeString {
			return Field{}, errors.New(errors.ErrorTypeConfig, "password format requires a string field").
				WithDetail("field", name)
		}
		f.Type = TypePassword
	}

	if enum := sf.Tag.Get("enum"); enum != "" {
		f.AllowedValues = splitList(enum)
	}

	if def, ok := sf.Tag.Lookup("default"); ok {
		v, err := parseDefault(f, def)
		if err != nil {
			return Field{}, errors.Wrap(err, errors.ErrorTypeConfig, "invalid default value").
				WithDetail("field", name).
				WithDetail("default", def)
		}
		f.Default = v
	}

	return f, nil
}

// fieldFromType maps a Go type to a field type, recursing into containers.
func fieldFromType(t reflect.Type, visiting map[reflect.Type]bool) (Field, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == durationType {
		return Field{Type: TypeDuration}, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return Field{Type: TypeBoolean}, nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16:
		return Field{Type: TypeInt}, nil
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64:
		return Field{Type: TypeLong}, nil
	case reflect.Float32, reflect.Float64:
		return Field{Type: TypeDouble}, nil
	case reflect.String:
		return Field{Type: TypeString}, nil
	case reflect.Slice, reflect.Array:
		elem, err := fieldFromType(t.Elem(), visiting)
		if err != nil {
			return Field{}, err
		}
		return Field{Type: TypeList, Elem: &elem}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Field{}, errors.New(errors.ErrorTypeConfig, "map keys must be strings").
				WithDetail("type", t.String())
		}
		elem, err := fieldFromType(t.Elem(), visiting)
		if err != nil {
			return Field{}, err
		}
		return Field{Type: TypeMap, Elem: &elem}, nil
	case reflect.Struct:
		children, err := reflectStruct(t, visiting)
		if err != nil {
			return Field{}, err
		}
		return Field{Type: TypeObject, Fields: children}, nil
	default:
		return Field{}, errors.New(errors.ErrorTypeConfig, "unsupported field type").
			WithDetail("type", t.String())
	}
}

func parseDefault(f Field, raw string) (any, error) {
	switch f.Type {
	case TypeBoolean:
		return strconv.ParseBool(raw)
	case TypeInt, TypeLong:
		return strconv.ParseInt(raw, 10, 64)
	case TypeDouble:
		return strconv.ParseFloat(raw, 64)
	case TypeDuration:
		if _, err := time.ParseDuration(raw); err != nil {
			return nil, err
		}
		return raw, nil
	case TypeList:
		if raw == "" {
			return []string{}, nil
		}
		return splitList(raw), nil
	case TypeMap, TypeObject:
		return nil, errors.New(errors.ErrorTypeConfig, "defaults are not supported for this field type").
			WithDetail("type", string(f.Type))
	default:
		return raw, nil
	}
}

func jsonName(sf reflect.StructField) (name string, inline, skip bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if opt == "inline" {
			inline = true
		}
	}
	if name == "" {
		name = sf.Name
	}
	return name, inline, false
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// humanize turns "batch_size" into "Batch size"
func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	if len(words) == 0 {
		return name
	}

	s := strings.ToLower(strings.Join(words, " "))
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
