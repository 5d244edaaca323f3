package ast

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrDecode indicates collection JSON decoding failures.
	ErrDecode = errors.New("collection decode error")
	// ErrUnsupportedVersion indicates a collection schema version other than SupportedVersion.
	ErrUnsupportedVersion = errors.New("collection version not supported")
	// ErrInvalidCollection indicates a document that does not match the collection structure.
	ErrInvalidCollection = errors.New("invalid collection")
)

//go:embed collection.schema.json
var collectionSchema []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(collectionSchema))
})

// Parse reads collection JSON into the schema model.
// Version and structure are checked before binding, so an unsupported
// collection never produces a partially decoded result.
func Parse(r io.Reader) (Collection, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return Collection{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var probe struct {
		Info struct {
			Schema string `json:"schema"`
		} `json:"info"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return Collection{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	info := Info{Schema: probe.Info.Schema}
	if version := info.Version(); version != SupportedVersion {
		if version == "" {
			version = "unknown"
		}
		return Collection{}, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}

	if err := validate(payload); err != nil {
		return Collection{}, err
	}

	var collection Collection
	if err := json.Unmarshal(payload, &collection); err != nil {
		return Collection{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return collection, nil
}

func validate(payload []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile collection schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		details = append(details, resultErr.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidCollection, strings.Join(details, "; "))
}
