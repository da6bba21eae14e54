package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docforge/pkg/importer"
	"github.com/goliatone/go-docforge/pkg/schema"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Bootstrap a template descriptor from an OpenAPI component schema",
		ArgsUsage: "<openapi-file> <schema-name>",
		Action:    runImport,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output path for the descriptor; stdout when omitted",
			},
			&cli.StringFlag{
				Name:  "id",
				Usage: "Template id for the generated descriptor",
			},
		},
	}
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	if args.Len() != 2 {
		return fmt.Errorf("expected <openapi-file> <schema-name>, got %d arguments", args.Len())
	}
	docPath, schemaName := args.Get(0), args.Get(1)

	raw, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", docPath, err)
	}
	fields, err := importer.Fields(ctx, raw, schemaName)
	if err != nil {
		return err
	}

	id := cmd.String("id")
	if id == "" {
		id = schemaName
	}
	desc := schema.TemplateDescriptor{
		ID:     id,
		Name:   schemaName,
		Fields: fields,
		Markup: importStubMarkup(fields),
	}

	out, err := yaml.Marshal(desc)
	if err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}
	if path := cmd.String("out"); path != "" {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("write descriptor: %w", err)
		}
		fmt.Printf("Descriptor written to %s\n", path)
		return nil
	}
	fmt.Print(string(out))
	return nil
}

// importStubMarkup produces a minimal markup skeleton carrying one marker per
// field, so the generated descriptor renders before an author styles it.
func importStubMarkup(fields []schema.FieldSchema) string {
	markup := "<article>\n"
	for _, field := range fields {
		markup += fmt.Sprintf("  <p>{%s}</p>\n", field.ID)
	}
	return markup + "</article>\n"
}
