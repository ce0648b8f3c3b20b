package wizard

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// FormValues holds the six user-entered fields. The zero value is the initial
// state of a wizard session: every field empty.
type FormValues struct {
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Name     string `json:"name" mapstructure:"name"`
	Email    string `json:"email" mapstructure:"email"`
	Website  string `json:"website" mapstructure:"website"`
	Github   string `json:"github" mapstructure:"github"`
}

// FieldNames lists the FormValues fields in step order.
var FieldNames = []string{
	model.FieldUsername,
	model.FieldPassword,
	model.FieldName,
	model.FieldEmail,
	model.FieldWebsite,
	model.FieldGithub,
}

// Get returns the value stored under the field name.
func (v FormValues) Get(name string) (string, bool) {
	switch name {
	case model.FieldUsername:
		return v.Username, true
	case model.FieldPassword:
		return v.Password, true
	case model.FieldName:
		return v.Name, true
	case model.FieldEmail:
		return v.Email, true
	case model.FieldWebsite:
		return v.Website, true
	case model.FieldGithub:
		return v.Github, true
	default:
		return "", false
	}
}

// Set stores value under the field name. Unknown names are rejected.
func (v *FormValues) Set(name, value string) error {
	switch name {
	case model.FieldUsername:
		v.Username = value
	case model.FieldPassword:
		v.Password = value
	case model.FieldName:
		v.Name = value
	case model.FieldEmail:
		v.Email = value
	case model.FieldWebsite:
		v.Website = value
	case model.FieldGithub:
		v.Github = value
	default:
		return fmt.Errorf("wizard: unknown field %q", name)
	}
	return nil
}

// Map returns the values keyed by field name.
func (v FormValues) Map() map[string]string {
	out := make(map[string]string, len(FieldNames))
	for _, name := range FieldNames {
		out[name], _ = v.Get(name)
	}
	return out
}

// DecodeValues maps loosely typed input (decoded JSON, flattened form posts)
// onto FormValues. Keys that are not form fields are ignored; multi-valued
// entries keep their last value, mirroring how browsers resolve duplicate
// inputs.
func DecodeValues(input map[string]any) (FormValues, error) {
	var out FormValues
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       lastValueHook,
		WeaklyTypedInput: true,
		Result:           &out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return FormValues{}, fmt.Errorf("wizard: configure decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return FormValues{}, fmt.Errorf("wizard: decode values: %w", err)
	}
	return out, nil
}

func lastValueHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if from.Kind() != reflect.Slice && from.Kind() != reflect.Array {
		return data, nil
	}
	if from.Elem().Kind() == reflect.Uint8 {
		return data, nil
	}
	value := reflect.ValueOf(data)
	if value.Len() == 0 {
		return "", nil
	}
	return fmt.Sprint(value.Index(value.Len() - 1).Interface()), nil
}
