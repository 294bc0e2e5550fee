// Package schemas embeds the JSON Schemas used to validate dealerrank files.
package schemas

import _ "embed"

// ConfigSchemaJSON is the schema for .dealerrank.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
