package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/uicatalog/catalog-mcp-go/pkg/errors"
	"github.com/uicatalog/catalog-mcp-go/pkg/registry"
)

const categorySchema = `{"type":"string","enum":["Components","Text Animations","Special Effects","Device Mocks"],"description":"Category filter"}`

var (
	getComponentSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"componentName": {"type": "string", "description": "Name of the component"},
			"category": ` + categorySchema + `
		},
		"required": ["componentName"]
	}`)

	listComponentsSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"category": ` + categorySchema + `
		}
	}`)

	getComponentMetadataSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"componentName": {"type": "string", "description": "Name of the component"}
		},
		"required": ["componentName"]
	}`)

	searchComponentsSchema = json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {"type": "string", "description": "Text matched against component names and descriptions"},
			"category": ` + categorySchema + `
		},
		"required": ["query"]
	}`)
)

// mustBeString rejects non-string argument values before they reach a handler.
var mustBeString = validation.By(func(v interface{}) error {
	if _, ok := v.(string); !ok {
		return fmt.Errorf("must be a string")
	}
	return nil
})

func categoryRules() []interface{} {
	labels := Categories()
	out := make([]interface{}, len(labels))
	for i, label := range labels {
		out[i] = label
	}
	return out
}

func validateArgs(args map[string]interface{}, keys ...*validation.KeyRules) error {
	// The Map rule skips nil maps entirely, which would let a request with
	// no arguments object bypass required-key checks.
	if args == nil {
		args = map[string]interface{}{}
	}
	err := validation.Validate(args, validation.Map(keys...).AllowExtraKeys())
	if err == nil {
		return nil
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		return errors.InvalidParameter("arguments", nil, err.Error())
	}

	// Report the first offending field in deterministic order.
	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	field := fields[0]
	fieldErr := verrs[field]

	if ve, isVE := fieldErr.(validation.Error); isVE {
		code := ve.Code()
		if strings.Contains(code, "required") || strings.Contains(code, "missing") {
			return errors.MissingParameter(field)
		}
	}
	return errors.InvalidParameter(field, args[field], fieldErr.Error())
}

func validateComponentArgs(args map[string]interface{}) error {
	return validateArgs(args,
		validation.Key("componentName", validation.Required, mustBeString),
		validation.Key("category", mustBeString, validation.In(categoryRules()...)).Optional(),
	)
}

func validateListArgs(args map[string]interface{}) error {
	return validateArgs(args,
		validation.Key("category", mustBeString, validation.In(categoryRules()...)).Optional(),
	)
}

func validateMetadataArgs(args map[string]interface{}) error {
	return validateArgs(args,
		validation.Key("componentName", validation.Required, mustBeString),
	)
}

func validateSearchArgs(args map[string]interface{}) error {
	return validateArgs(args,
		validation.Key("query", validation.Required, mustBeString),
		validation.Key("category", mustBeString, validation.In(categoryRules()...)).Optional(),
	)
}

var _ registry.ArgsValidator = validateComponentArgs
