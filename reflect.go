// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

var pinIDType = reflect.TypeOf(NC)

// Bind sets the PinID fields of the struct pointed to by v to the board pins
// bound to the corresponding part pins.
//
// Fields are identified by a `pin` tag. By default, the pin name is the field
// name in lowercase. A specific name can be forced in the tag: `pin:"name"`.
//
//	type led struct {
//		In boardsim.PinID `pin:""`      // part pin "in"
//		K  boardsim.PinID `pin:"cathode"`
//	}
//
// Bind panics if v is not a pointer to a struct, if a tagged field is not a
// PinID or if the part has no such pin.
//
func (s *Socket) Bind(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("Bind: unsupported type %T", v))
	}
	e := rv.Elem()
	typ := e.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("pin")
		if !ok {
			continue
		}
		if f.Type != pinIDType {
			panic(errors.Errorf("unsupported type %q for field %q in %q", f.Type, f.Name, typ.Name()))
		}
		name := tag
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		fv := e.Field(i)
		if !fv.CanSet() {
			panic(errors.Errorf("field %q in %q is not settable", f.Name, typ.Name()))
		}
		fv.SetInt(int64(s.Pin(name)))
	}
}
