package models

import (
	"bytes"
	jsoniter "github.com/json-iterator/go"
)

// FlexString accepts any JSON scalar (string, number, boolean) and keeps its
// text form. Null and absent both decode to the empty string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string { return string(f) }

// OptionalString distinguishes an omitted key (Set=false) from an explicit
// null (Set=true, Null=true) and from a value.
type OptionalString struct {
	Set   bool
	Null  bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		o.Value = ""
		return nil
	}
	var f FlexString
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Null = false
	o.Value = string(f)
	return nil
}

func NullString() OptionalString { return OptionalString{Set: true, Null: true} }

func SomeString(v string) OptionalString { return OptionalString{Set: true, Value: v} }
