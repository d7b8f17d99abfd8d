package utils

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/waterlife-shop/waterlife-backend/models"
)

func init() {
	// Validation errors name fields the way clients send them.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	}
}

// ParseIDParam parses the :id path parameter. On failure it writes a 400 and
// returns false.
func ParseIDParam(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Nieprawidłowy identyfikator "+what))
		return uuid.Nil, false
	}
	return id, true
}

// BindJSON decodes and validates the body. On failure it writes a 400 naming
// the offending field and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, ValidationMessage(err)))
		return false
	}
	return true
}

// BindQuery is BindJSON for query strings.
func BindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, ValidationMessage(err)))
		return false
	}
	return true
}

// ValidationMessage turns a binding error into a Polish message for the first
// failed field.
func ValidationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "Nieprawidłowe dane żądania"
	}

	fe := ve[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Pole %s jest wymagane", field)
	case "email":
		return fmt.Sprintf("Pole %s musi być poprawnym adresem e-mail", field)
	case "url":
		return fmt.Sprintf("Pole %s musi być poprawnym adresem URL", field)
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Pole %s musi mieć co najmniej %s znaków", field, fe.Param())
		}
		return fmt.Sprintf("Pole %s musi wynosić co najmniej %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("Pole %s jest za długie", field)
	case "len":
		return fmt.Sprintf("Pole %s musi mieć %s znaków", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("Pole %s może zawierać tylko cyfry", field)
	case "oneof":
		return fmt.Sprintf("Pole %s musi mieć jedną z wartości: %s", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("Pole %s musi być identyfikatorem UUID", field)
	}
	return fmt.Sprintf("Pole %s ma nieprawidłową wartość", field)
}

// SetCookie writes an HttpOnly, SameSite=Lax cookie on path /.
func SetCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

// ClearCookie expires a cookie set by SetCookie.
func ClearCookie(c *gin.Context, name string, secure bool) {
	SetCookie(c, name, "", -1, secure)
}
