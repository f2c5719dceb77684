// Package manifest decodes YAML spec files (apiVersion/kind/metadata/spec
// envelopes) into validated spec objects.
package manifest
