package report

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-reportgen/pkg/config"
)

// Schema describes structured reports for cfg. Known sections and fields are
// spelled out; unknown ones are still accepted as string maps because stale
// keys from older configurations are legal and ignored on restore.
func Schema(cfg config.Config) *openapi3.Schema {
	fieldsFallback := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())
	sectionFallback := openapi3.NewObjectSchema().WithProperty("fields", fieldsFallback)

	sections := openapi3.NewObjectSchema().WithAdditionalProperties(sectionFallback)
	for _, sc := range cfg.Sections {
		fields := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())
		for _, fc := range sc.Fields {
			prop := openapi3.NewStringSchema()
			prop.Title = fc.Label
			prop.Description = fc.Hint
			fields.WithProperty(fc.FieldID, prop)
		}
		section := openapi3.NewObjectSchema().WithProperty("fields", fields)
		section.Title = sc.Title
		section.Required = []string{"fields"}
		sections.WithProperty(sc.SectionID, section)
	}

	root := openapi3.NewObjectSchema().WithProperty("sections", sections)
	root.Title = "StructuredReport"
	root.Required = []string{"sections"}
	return root
}

// Validate checks a serialised structured report against schema.
func Validate(schema *openapi3.Schema, data string) error {
	if schema == nil {
		return fmt.Errorf("report: schema is nil")
	}
	var value any
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	if err := schema.VisitJSON(value); err != nil {
		return fmt.Errorf("%w: does not match config: %w", ErrInvalidReport, err)
	}
	return nil
}

// Document returns an OpenAPI description of the report API served by
// pkg/server for the given configuration.
func Document(cfg config.Config, version string) *openapi3.T {
	structured := Schema(cfg)
	text := openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/plain"})

	reportResponse := openapi3.NewResponse().
		WithDescription("compiled report").
		WithJSONSchema(openapi3.NewObjectSchema().
			WithProperty("report", openapi3.NewStringSchema()).
			WithProperty("stale", openapi3.NewBoolSchema()))

	ok := func(resp *openapi3.Response) *openapi3.Responses {
		return openapi3.NewResponses(openapi3.WithStatus(200, &openapi3.ResponseRef{Value: resp}))
	}
	op := func(id, summary string, resp *openapi3.Response) *openapi3.Operation {
		operation := openapi3.NewOperation()
		operation.OperationID = id
		operation.Summary = summary
		operation.Responses = ok(resp)
		return operation
	}
	withBody := func(operation *openapi3.Operation, schema *openapi3.Schema) *openapi3.Operation {
		operation.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithJSONSchema(schema)}
		return operation
	}
	pathParam := func(name string) *openapi3.ParameterRef {
		return &openapi3.ParameterRef{Value: openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema())}
	}

	paths := openapi3.NewPaths()
	paths.Set("/api/report", &openapi3.PathItem{
		Get: op("getReport", "Human-readable report", openapi3.NewResponse().WithDescription("report text").WithContent(text)),
	})
	paths.Set("/api/report/generate", &openapi3.PathItem{
		Post: op("generateReport", "Recompile the human-readable report", openapi3.NewResponse().WithDescription("report text").WithContent(text)),
	})
	paths.Set("/api/report/structured", &openapi3.PathItem{
		Get: op("getStructuredReport", "Structured report", openapi3.NewResponse().WithDescription("structured report").WithJSONSchema(structured)),
		Put: withBody(op("importStructuredReport", "Restore field values from a structured report", openapi3.NewResponse().WithDescription("structured report").WithJSONSchema(structured)), structured),
	})
	paths.Set("/api/sections/{sectionID}/fields/{fieldID}", &openapi3.PathItem{
		Parameters: openapi3.Parameters{pathParam("sectionID"), pathParam("fieldID")},
		Put:        withBody(op("setFieldValue", "Set a field value", reportResponse), openapi3.NewObjectSchema().
			WithProperty("value", openapi3.NewStringSchema()).
			WithProperty("seq", openapi3.NewInt64Schema().WithMin(0))),
	})
	paths.Set("/api/sections/{sectionID}/included", &openapi3.PathItem{
		Parameters: openapi3.Parameters{pathParam("sectionID")},
		Put:        withBody(op("setSectionIncluded", "Toggle section inclusion", reportResponse), openapi3.NewObjectSchema().WithProperty("included", openapi3.NewBoolSchema())),
	})
	paths.Set("/api/language", &openapi3.PathItem{
		Put: withBody(op("setLanguage", "Load the configuration for a language", reportResponse), openapi3.NewObjectSchema().WithProperty("language", openapi3.NewStringSchema())),
	})

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "reportgen",
			Version: version,
		},
		Paths: paths,
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"StructuredReport": openapi3.NewSchemaRef("", structured),
			},
		},
	}
}
