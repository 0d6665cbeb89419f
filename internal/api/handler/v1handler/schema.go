package v1handler

import (
	"embed"
	"fmt"
	"strings"

	"loanchecker/pkg/serrors"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

type schema struct {
	name   string
	schema *gojsonschema.Schema
}

type schemas struct {
	form     *schema
	score    *schema
	feedback *schema
}

func loadSchema(name string) (*schema, error) {
	data, err := schemaFiles.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("could not read %s schema: %w", name, err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("could not compile %s schema: %w", name, err)
	}

	return &schema{name: name, schema: s}, nil
}

// mustLoadSchemas panics on embedded schemas that do not compile.
func mustLoadSchemas() *schemas {
	var (
		out schemas
		err error
	)
	for name, dst := range map[string]**schema{
		"form":     &out.form,
		"score":    &out.score,
		"feedback": &out.feedback,
	} {
		if *dst, err = loadSchema(name); err != nil {
			panic(err)
		}
	}

	return &out
}

// validate reports schema violations as a bad request listing every problem.
func (s *schema) validate(data []byte) error {
	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON")
	}
	if res.Valid() {
		return nil
	}

	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}

	return serrors.With(serrors.ErrBadRequest, "invalid %s: %s", s.name, strings.Join(problems, "; "))
}
