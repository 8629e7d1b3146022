package utils

import (
	"fmt"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"oamanager/datastore"
	"strings"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags of v and reports failures as
// invalid input naming each offending field.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return datastore.Invalid("%v", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", lowerFirst(fe.Field()), fe.Tag()))
	}
	return datastore.Invalid("%s", strings.Join(msgs, ", "))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// IsPNG sniffs the leading bytes rather than trusting the declared type.
func IsPNG(head []byte) bool {
	return mimetype.Detect(head).Is("image/png")
}
