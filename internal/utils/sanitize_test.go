package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsScripts(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("<script>alert(1)</script>hello"))
	// Le formatage inoffensif reste, les attributs dangereux sautent
	assert.Equal(t, "<b>bold</b> text", Sanitize("<b onclick=\"x()\">bold</b> text"))
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}

	assert.NoError(t, ValidateStruct(payload{Email: "coach@gymbrah.com"}))
	assert.Error(t, ValidateStruct(payload{Email: "not-an-email"}))
	assert.Error(t, ValidateStruct(payload{}))
}
