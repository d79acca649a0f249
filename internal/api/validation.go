package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/AgentTarik/gosat-api/internal/cpf"

	"github.com/go-playground/validator/v10"
)

// Mensagens de validação
const (
	MsgInvalidJSON         = "JSON inválido."
	MsgInvalidCPF          = "CPF inválido, verifique o número informado e tente novamente."
	MsgInvalidInstitution  = "instituicao_id deve ser um número válido."
	MsgInvalidModalityCode = "codModalidade deve ser um texto válido."
	MsgInvalidID           = "id deve ser um número inteiro positivo."
)

// NewValidate returns a validator that reports JSON field names and knows the "cpf" tag.
func NewValidate(cv *cpf.Validator) (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := cpf.RegisterValidation(v, cv); err != nil {
		return nil, err
	}
	return v, nil
}

// fieldErrors maps each failing field to its messages.
func fieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório.", fe.Field())
	case "cpf":
		return fmt.Sprintf("O campo %s deve ser um CPF válido.", fe.Field())
	case "max":
		return fmt.Sprintf("O campo %s deve ter no máximo %s caracteres.", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("O campo %s deve ser maior que %s.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("O campo %s deve ser maior ou igual a %s.", fe.Field(), fe.Param())
	case "lt", "lte":
		return fmt.Sprintf("O campo %s excede o valor máximo permitido.", fe.Field())
	default:
		return fmt.Sprintf("O campo %s é inválido.", fe.Field())
	}
}

// positiveNumber accepts a JSON number or a numeric string greater than zero.
func positiveNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// nonEmptyString accepts a string with at least one non-blank character.
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
