package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"dsb-backend-go/internal/models"
)

// PayloadError reports a provider answer that could not be turned into the
// expected structure.
type PayloadError struct {
	// Stage is "decode" for malformed JSON and "validate" for well-formed JSON
	// with the wrong shape or values.
	Stage  string
	Target string
	Err    error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid %s payload (%s): %v", e.Target, e.Stage, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so errors point at the provider's document.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// stripCodeFence removes a surrounding ```json fence some providers add even
// when asked for bare JSON.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func decodePayload(raw, target string, dst interface{}) error {
	body := stripCodeFence(raw)
	if body == "" {
		return &PayloadError{Stage: "decode", Target: target, Err: errors.New("empty response")}
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return &PayloadError{Stage: "decode", Target: target, Err: err}
	}
	return nil
}

func validatePayload(target string, v interface{}) error {
	err := payloadValidator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &PayloadError{Stage: "validate", Target: target, Err: err}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return &PayloadError{Stage: "validate", Target: target, Err: errors.New(strings.Join(msgs, "; "))}
}

// ParseAnalysisResult decodes and validates a provider answer as an AnalysisResult.
func ParseAnalysisResult(raw string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := decodePayload(raw, "analysis", &result); err != nil {
		return nil, err
	}
	if err := validatePayload("analysis", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ParseDSBSolution decodes and validates a provider answer as a DSBSolution.
func ParseDSBSolution(raw string) (*models.DSBSolution, error) {
	var solution models.DSBSolution
	if err := decodePayload(raw, "solution", &solution); err != nil {
		return nil, err
	}
	if err := validatePayload("solution", &solution); err != nil {
		return nil, err
	}
	return &solution, nil
}

// ParseOptimization decodes a free-form optimization answer. Only the outer
// shape is checked: it must be a non-empty JSON object.
func ParseOptimization(raw string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := decodePayload(raw, "optimization", &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &PayloadError{Stage: "validate", Target: "optimization", Err: errors.New("empty object")}
	}
	return out, nil
}
