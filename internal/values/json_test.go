/*
File    : gomix-pseudo/internal/values/json_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestListToJSONScalars(t *testing.T) {
	l := &List{Elements: []Value{Int(1), Flt(2.5), &String{Value: "hi"}, &Bool{Value: true}, Null{}}}
	text, err := l.ToJSON()
	assert.NoError(t, err)

	parsed := gjson.Parse(text)
	assert.True(t, parsed.IsArray())
	assert.Equal(t, int64(1), parsed.Get("0").Int())
	assert.Equal(t, 2.5, parsed.Get("1").Float())
	assert.Equal(t, "hi", parsed.Get("2").String())
	assert.True(t, parsed.Get("3").Bool())
	assert.Equal(t, gjson.Null, parsed.Get("4").Type)
}

func TestListToJSONNested(t *testing.T) {
	inner := &List{Elements: []Value{Int(1), Int(2)}}
	outer := &List{Elements: []Value{inner, &String{Value: "tail"}}}
	text, err := outer.ToJSON()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), gjson.Get(text, "0.1").Int())
	assert.Equal(t, "tail", gjson.Get(text, "1").String())
}

func TestListToJSONMethodDispatch(t *testing.T) {
	l := &List{Elements: []Value{Int(7)}}
	v, err := ListMethods["toJSON"](l, nil)
	assert.NoError(t, err)
	s, ok := v.(*String)
	assert.True(t, ok)
	assert.Equal(t, "[7]", s.Value)

	_, err = ListMethods["toJSON"](l, []Value{Int(1)})
	assert.Error(t, err)
}
