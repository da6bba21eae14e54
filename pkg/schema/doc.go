// Package schema defines the data model shared by the whole pipeline: field
// schemas, template descriptors, form values, and the marker scanner that
// locates substitution targets inside template markup.
package schema
