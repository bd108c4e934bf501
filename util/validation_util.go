// util/validation_util.go

package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ValidationUtil{validate: v}
}

// ValidateStruct runs the struct's validate tags and reports failing fields.
func (v *ValidationUtil) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return bo_errors.Invalid("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return bo_errors.Invalid("%s", strings.Join(msgs, "; "))
}

func (v *ValidationUtil) ValidatePurchaseOrder(order *model.PurchaseOrder) error {
	if err := v.ValidateStruct(order); err != nil {
		return err
	}
	if len(order.Items) == 0 {
		return bo_errors.Invalid("purchase order needs at least one item")
	}
	return nil
}
