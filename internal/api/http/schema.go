package http

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"utility-bill-splitter/internal/domain"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const maxBodyBytes = 1 << 20

// Request schema names, one per write payload.
const (
	schemaRegister           = "register"
	schemaLogin              = "login"
	schemaGroupCreate        = "group_create"
	schemaGroupUpdate        = "group_update"
	schemaMemberAdd          = "member_add"
	schemaBillCreate         = "bill_create"
	schemaBillUpdate         = "bill_update"
	schemaPaymentCreate      = "payment_create"
	schemaNotificationCreate = "notification_create"
)

// schemaViolation is a payload that parsed as JSON but failed its schema.
type schemaViolation struct {
	details []string
}

func (e *schemaViolation) Error() string {
	return "request does not match schema: " + strings.Join(e.details, "; ")
}

// validator holds the compiled request schemas.
type validator struct {
	schemas map[string]*gojsonschema.Schema
}

func newValidator() (*validator, error) {
	files, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, err
	}
	v := &validator{schemas: make(map[string]*gojsonschema.Schema, len(files))}
	for _, f := range files {
		raw, err := schemaFS.ReadFile(path.Join("schemas", f.Name()))
		if err != nil {
			return nil, err
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", f.Name(), err)
		}
		v.schemas[strings.TrimSuffix(f.Name(), ".schema.json")] = schema
	}
	return v, nil
}

// decode reads the request body, validates it against the named schema and
// unmarshals it into dst.
func (v *validator) decode(r *http.Request, name string, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: unreadable request body", domain.ErrInvalidInput)
	}
	if !json.Valid(body) {
		return fmt.Errorf("%w: request body must be valid JSON", domain.ErrInvalidInput)
	}

	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("no schema named %q", name)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return err
	}
	if !res.Valid() {
		details := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			details = append(details, e.String())
		}
		return &schemaViolation{details: details}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
