package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError 单一栏位的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误里使用 json 栏位名
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct 校验 s 的 validate tag，返回全部错误而不是遇错即停
func ValidateStruct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s 為必填欄位！", fe.Field())
	case "max":
		return fmt.Sprintf("%s 不可超過 %s 字！", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s 至少需 %s 字！", fe.Field(), fe.Param())
	case "email":
		return "Email 格式錯誤！"
	case "eqfield":
		return "兩次輸入的密碼不相符！"
	default:
		return fmt.Sprintf("%s 格式錯誤！", fe.Field())
	}
}
