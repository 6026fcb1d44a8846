package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct valide un payload de requête via ses tags `validate`
func ValidateStruct(payload interface{}) error {
	return validate.Struct(payload)
}
