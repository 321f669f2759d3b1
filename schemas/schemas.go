// Package schemas embeds the JSON Schemas of the artifacts the CLI emits.
package schemas

import _ "embed"

// ReportFile is the file name of the report schema.
const ReportFile = "report.schema.json"

// Report is the JSON Schema of a scoring report.
//
//go:embed report.schema.json
var Report string
