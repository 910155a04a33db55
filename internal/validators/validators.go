package validators

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{8,20}$`)
	once         sync.Once
)

// Register installs the custom rules on gin's validator engine. Field errors
// are reported by their json names.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		})
	})
}

func IsPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}
