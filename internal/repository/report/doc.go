// Package report persists the summary of a monitoring session.
//
// The FileRepository stores and loads the report as JSON on disk. The document is
// built as a protobuf Struct and encoded with protojson.
package report
