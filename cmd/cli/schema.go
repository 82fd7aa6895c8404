package cli

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/rejot-dev/montyhall/internal/config"
	"github.com/rejot-dev/montyhall/internal/report"
	"github.com/urfave/cli/v2"
)

var reportSchemaFlag = &cli.BoolFlag{
	Name:  "report",
	Usage: "print the schema of the json/yaml report instead of the configuration",
}

// SchemaCommand prints JSON Schemas for the configuration file and reports.
var SchemaCommand = cli.Command{
	Name:   "schema",
	Usage:  "print the JSON Schema of the configuration file or of the report",
	Flags:  []cli.Flag{reportSchemaFlag},
	Action: schemaAction,
}

func schemaAction(c *cli.Context) error {
	var schema *jsonschema.Schema
	if c.Bool(reportSchemaFlag.Name) {
		schema = generateSchema[report.Summary]()
	} else {
		schema = generateSchema[config.Config]()
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}

func generateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
