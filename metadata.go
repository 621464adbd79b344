package isotope

import (
	"fmt"
	"reflect"

	"github.com/zoobzio/sentinel"
)

// metaTag marks struct fields that Annotate copies into material metadata.
const metaTag = "meta"

func init() {
	sentinel.Tag(metaTag)
}

// Annotate copies the fields of v tagged `meta:"key"` into m's metadata,
// formatted with fmt. v must be a struct value; untagged fields are ignored.
//
//	type Provenance struct {
//	    Source string  `meta:"source"`
//	    Burnup float64 `meta:"burnup_mwd_kg"`
//	}
//	isotope.Annotate(fuel, Provenance{Source: "PWR assembly", Burnup: 45})
func Annotate[T any](m *Material, v T) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		return InvalidArgument("annotate: %T is not a struct", v)
	}

	info := sentinel.Scan[T]()
	for _, field := range info.Fields {
		key, ok := field.Tags[metaTag]
		if !ok || key == "" || key == "-" {
			continue
		}
		fv, err := rv.FieldByIndexErr(field.Index)
		if err != nil {
			return fmt.Errorf("annotate field %s: %w", field.Name, err)
		}
		if !fv.CanInterface() {
			continue
		}
		m.SetMetadata(key, fmt.Sprint(fv.Interface()))
	}
	return nil
}
