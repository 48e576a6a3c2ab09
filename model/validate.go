package model

import (
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks a host and request before translation. It reports the
// first offending field as a validation Error.
func Validate(host Host, req *Request) error {
	if req == nil {
		return NewValidationError("request", "is required")
	}
	if err := validateStruct("host", host); err != nil {
		return err
	}
	if err := validateStruct("request", req); err != nil {
		return err
	}
	for i, p := range req.Parts {
		if isNilPart(p) {
			return NewValidationError("request.parts", "nil part at index "+strconv.Itoa(i))
		}
	}
	return nil
}

// proxyHost carries the validation rules of a per-call proxy. An empty
// scheme means http.
type proxyHost struct {
	Scheme   string `validate:"omitempty,oneof=http https socks5"`
	Hostname string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
}

// ValidateContext checks the per-call settings of cc. A nil cc is valid.
func ValidateContext(cc *ClientContext) error {
	if cc == nil || cc.RequestConfig == nil || cc.RequestConfig.Proxy == nil {
		return nil
	}
	p := cc.RequestConfig.Proxy
	return validateStruct("requestconfig.proxy", proxyHost{Scheme: p.Scheme, Hostname: p.Hostname, Port: p.Port})
}

func isNilPart(p Part) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *StringPart:
		return v == nil
	case *ByteArrayPart:
		return v == nil
	case *InputStreamPart:
		return v == nil
	case *FilePart:
		return v == nil
	default:
		return false
	}
}

// ValidateStruct validates any struct carrying `validate` tags and converts
// the result into a validation Error.
func ValidateStruct(s any) error {
	return validateStruct("", s)
}

func validateStruct(prefix string, s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &Error{Code: ErrCodeValidation, Message: err.Error(), Err: err}
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	if prefix != "" {
		field = prefix + "." + field
	}
	return &Error{Code: ErrCodeValidation, Field: field, Message: describe(fe), Err: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "startswith":
		return "must start with " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
