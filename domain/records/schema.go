package records

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

type schemaField struct {
	index int
	name  string
	alias string
}

type schema struct {
	fields []schemaField
}

var schemaCache sync.Map // reflect.Type -> *schema

var binderType = reflect.TypeOf((*binder)(nil)).Elem()

func schemaOf[T any]() (*schema, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record type %T is not a struct", zero)
	}
	if s, ok := schemaCache.Load(t); ok {
		return s.(*schema), nil
	}

	s := &schema{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		alias, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if alias == "" || alias == "-" {
			return nil, fmt.Errorf("record field %s.%s has no column alias", t.Name(), sf.Name)
		}
		if !reflect.PointerTo(sf.Type).Implements(binderType) {
			return nil, fmt.Errorf("record field %s.%s is %s, not a records.Field", t.Name(), sf.Name, sf.Type)
		}
		s.fields = append(s.fields, schemaField{index: i, name: sf.Name, alias: alias})
	}

	actual, _ := schemaCache.LoadOrStore(t, s)
	return actual.(*schema), nil
}

// Aliases returns the column aliases of a record type in declaration order.
func Aliases[T any]() ([]string, error) {
	s, err := schemaOf[T]()
	if err != nil {
		return nil, err
	}
	aliases := make([]string, len(s.fields))
	for i, f := range s.fields {
		aliases[i] = f.alias
	}
	return aliases, nil
}

// Values returns the field values of a record in declaration order, nil for
// null fields.
func Values[T any](rec T) ([]any, error) {
	s, err := schemaOf[T]()
	if err != nil {
		return nil, err
	}
	v := reflect.ValueOf(rec)
	out := make([]any, len(s.fields))
	for i, f := range s.fields {
		if iface, ok := v.Field(f.index).Interface().(interface{ Interface() any }); ok {
			out[i] = iface.Interface()
		}
	}
	return out, nil
}
