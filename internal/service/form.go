package service

import (
	"edu_portal/internal/util"
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// fieldMessager 表单按字段名给出校验失败时的提示
type fieldMessager interface {
	FieldMessages() map[string]string
}

// ValidateForm 按 binding 标签校验表单，直接调用服务时同样生效
func ValidateForm(obj interface{}, fallback string) error {
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return FormError(obj, err, fallback)
	}
	return nil
}

// FormError 把绑定或校验错误转换为 ValidationError，优先使用第一个出错字段的提示
func FormError(obj interface{}, err error, fallback string) error {
	var errs validator.ValidationErrors
	if m, ok := obj.(fieldMessager); ok && errors.As(err, &errs) && len(errs) > 0 {
		if msg, ok := m.FieldMessages()[errs[0].StructField()]; ok {
			return util.ValidationError(msg)
		}
	}
	return util.ValidationError(fallback)
}
