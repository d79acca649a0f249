package cpf

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Length of a cleaned CPF.
const Length = 11

// TestValues are syntactically invalid CPFs accepted by partner sandboxes.
var TestValues = []string{
	"11111111111",
	"22222222222",
	"12312312312",
}

// Validator checks CPFs. The zero value rejects the test values.
type Validator struct {
	allowed map[string]struct{}
}

// NewValidator builds a Validator; when allowTestValues is set the entries
// of TestValues are accepted without checksum verification.
func NewValidator(allowTestValues bool) *Validator {
	v := &Validator{}
	if allowTestValues {
		v.allowed = make(map[string]struct{}, len(TestValues))
		for _, s := range TestValues {
			v.allowed[s] = struct{}{}
		}
	}
	return v
}

// Validate strips every non-digit from raw and returns the cleaned CPF when
// it is valid.
func (v *Validator) Validate(raw string) (string, bool) {
	cpf := Clean(raw)

	if v != nil {
		if _, ok := v.allowed[cpf]; ok {
			return cpf, true
		}
	}

	if len(cpf) != Length || repeated(cpf) {
		return "", false
	}

	for t := 9; t < Length; t++ {
		sum := 0
		for i := 0; i < t; i++ {
			sum += int(cpf[i]-'0') * (t + 1 - i)
		}
		digit := (sum * 10) % 11
		if digit == 10 {
			digit = 0
		}
		if int(cpf[t]-'0') != digit {
			return "", false
		}
	}
	return cpf, true
}

// Clean keeps only the ASCII digits of s.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Format renders an 11 digit CPF as XXX.XXX.XXX-XX. Other inputs are returned unchanged.
func Format(cpf string) string {
	if len(cpf) != Length {
		return cpf
	}
	return cpf[0:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:11]
}

// Mask hides the first and last digit groups, for logging.
func Mask(cpf string) string {
	if len(cpf) != Length {
		return "***"
	}
	return "***." + cpf[3:6] + "." + cpf[6:9] + "-**"
}

func repeated(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// RegisterValidation adds the "cpf" tag to v, backed by cv.
func RegisterValidation(v *validator.Validate, cv *Validator) error {
	return v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		_, ok := cv.Validate(fl.Field().String())
		return ok
	})
}
