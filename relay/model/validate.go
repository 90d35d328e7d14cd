package model

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ParseSize splits "WxH" into positive dimensions.
func ParseSize(size string) (width int, height int, ok bool) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(size)), "x")
	if len(parts) != 2 {
		return 0, 0, false
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil || width <= 0 {
		return 0, 0, false
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

func validateImageSize(fl validator.FieldLevel) bool {
	_, _, ok := ParseSize(fl.Field().String())
	return ok
}

// RegisterValidations installs the custom binding tags on gin's validator.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("imagesize", validateImageSize)
}

func init() {
	if err := RegisterValidations(); err != nil {
		panic(err)
	}
}
