package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func TestOK(t *testing.T) {
	resp := OK("done")

	assert.True(t, resp.Success)
	assert.Equal(t, "done", resp.Message)
	assert.Empty(t, resp.Redirect)
	assert.Nil(t, resp.User)
}

func TestOKWithRedirect(t *testing.T) {
	resp := OKWithRedirect("registered", "/")

	assert.True(t, resp.Success)
	assert.Equal(t, "registered", resp.Message)
	assert.Equal(t, "/", resp.Redirect)
}

func TestOKWithUser(t *testing.T) {
	user := map[string]string{"user_id": "u1"}
	resp := OKWithUser(user)

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Message)
	assert.Equal(t, user, resp.User)
}

func TestFail(t *testing.T) {
	resp := Fail("something went wrong")

	assert.False(t, resp.Success)
	assert.Equal(t, "something went wrong", resp.Message)
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		Weather string `validate:"required"`
		Date    string `validate:"datetime=2006-01-02"`
	}

	v := validator.New()
	ts := TestStruct{
		Date: "not-a-date",
	}

	err := v.Struct(ts)
	assert.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "field Weather is a required field")
	assert.Contains(t, resp.Message, "field Date can contain only date in format 2006-01-02")
}
