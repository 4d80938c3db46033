package routedom

import (
	"fmt"
	"reflect"
)

// argRegistry holds the values handed to Mount for injection into page methods.
// Values are stored behind a pointer so both T and *T parameters can be served.
type argRegistry map[reflect.Type]reflect.Value

func (args argRegistry) addArg(v any) error {
	if v == nil {
		return nil
	}
	pv := reflect.ValueOf(v)
	if pv.Kind() != reflect.Ptr {
		cp := reflect.New(pv.Type())
		cp.Elem().Set(pv)
		pv = cp
	}
	if _, ok := args[pv.Type()]; ok {
		return fmt.Errorf("duplicate type %s in args registry", pv.Type().Elem())
	}
	args[pv.Type()] = pv
	return nil
}

func (args argRegistry) getArg(want reflect.Type) (reflect.Value, bool) {
	if v, ok := args[want]; ok {
		return v, true
	}
	if want.Kind() != reflect.Ptr {
		if v, ok := args[reflect.PointerTo(want)]; ok {
			return v.Elem(), true
		}
	}
	if want.Kind() != reflect.Interface {
		return reflect.Value{}, false
	}
	for t, v := range args {
		if t.Implements(want) {
			return v, true
		}
		if t.Elem().Implements(want) {
			return v.Elem(), true
		}
	}
	return reflect.Value{}, false
}
