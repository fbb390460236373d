package persist

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaFS contains the embedded snapshot JSON schema.
//
//go:embed snapshot.schema.json
var SchemaFS embed.FS

const schemaFile = "snapshot.schema.json"

// ErrInvalidSnapshot is returned when a JSON snapshot does not match the schema.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

var snapshotSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	raw, err := SchemaFS.ReadFile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}

	return schema, nil
})

// ValidateSnapshot checks raw JSON against the snapshot schema. Every
// violation is listed in the returned error.
func ValidateSnapshot(data []byte) error {
	schema, err := snapshotSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		violations = append(violations, violation.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(violations, "; "))
}
