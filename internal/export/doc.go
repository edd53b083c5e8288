// Package export writes results, fields, charts and scene screenshots to
// files. Table formats follow the file extension: ".json" selects JSON and
// anything else CSV.
package export
