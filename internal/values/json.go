/*
File    : gomix-pseudo/internal/values/json.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package values

import (
	"github.com/tidwall/sjson"
)

// ToJSON renders the list as a JSON array: numbers, bools, and strings map
// to their JSON counterparts, null to JSON null, and nested lists recurse.
// Values with no JSON counterpart (files, callables) render as their
// String() form. Exposed to user programs as the toJSON() list method.
func (l *List) ToJSON() (string, error) {
	out := "[]"
	var err error
	for _, e := range l.Elements {
		switch v := e.(type) {
		case Null:
			out, err = sjson.Set(out, "-1", nil)
		case *Number:
			if v.IsFloat {
				out, err = sjson.Set(out, "-1", v.Float)
			} else {
				out, err = sjson.Set(out, "-1", v.Int)
			}
		case *Bool:
			out, err = sjson.Set(out, "-1", v.Value)
		case *String:
			out, err = sjson.Set(out, "-1", v.Value)
		case *List:
			nested, nerr := v.ToJSON()
			if nerr != nil {
				return "", nerr
			}
			out, err = sjson.SetRaw(out, "-1", nested)
		default:
			out, err = sjson.Set(out, "-1", e.String())
		}
		if err != nil {
			return "", &RuntimeError{Msg: "toJSON: " + err.Error()}
		}
	}
	return out, nil
}

func init() {
	ListMethods["toJSON"] = func(l *List, args []Value) (Value, error) {
		if len(args) != 0 {
			return nil, &ValueError{Msg: "toJSON takes no arguments"}
		}
		text, err := l.ToJSON()
		if err != nil {
			return nil, err
		}
		return &String{Value: text}, nil
	}
}
