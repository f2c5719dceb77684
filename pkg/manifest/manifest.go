package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/drovehq/drove/pkg/types"
)

// APIVersion is the manifest schema version this build understands.
const APIVersion = "drove/v1"

// Supported manifest kinds.
const (
	KindCluster = "Cluster"
	KindNode    = "Node"
	KindService = "Service"
	KindNetwork = "Network"
)

// Manifest is the YAML envelope of a spec file.
type Manifest struct {
	APIVersion string         `yaml:"apiVersion"`
	Kind       string         `yaml:"kind"`
	Metadata   Metadata       `yaml:"metadata"`
	Spec       map[string]any `yaml:"spec"`
}

// Metadata carries the name and labels of the object being declared.
type Metadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// Object is a decoded, validated spec. Spec is one of *types.ClusterSpec,
// *types.NodeSpec, *types.ServiceSpec or *types.NetworkSpec depending on
// Kind.
type Object struct {
	Kind string
	Name string
	Spec any
}

// Decode parses a single-document YAML manifest into a typed, validated
// spec. Fields the envelope does not mention come back zero; fields this
// build does not know are preserved in the spec's Extra bag.
func Decode(data []byte) (*Object, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return decode(&m)
}

// DecodeAll parses a multi-document YAML stream, one object per document.
func DecodeAll(data []byte) ([]*Object, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var objs []*Object
	for {
		var m Manifest
		err := dec.Decode(&m)
		if errors.Is(err, io.EOF) {
			return objs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse manifest document %d: %w", len(objs)+1, err)
		}
		obj, err := decode(&m)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
}

func decode(m *Manifest) (*Object, error) {
	if m.APIVersion != "" && m.APIVersion != APIVersion {
		return nil, fmt.Errorf("unsupported apiVersion: %s", m.APIVersion)
	}

	// The spec body travels YAML -> JSON -> typed object so that unknown
	// fields take the same preservation path as store reads.
	specJSON, err := json.Marshal(m.Spec)
	if err != nil {
		return nil, fmt.Errorf("failed to convert spec body: %w", err)
	}

	annotations := types.Annotations{Name: m.Metadata.Name, Labels: m.Metadata.Labels}

	obj := &Object{Kind: m.Kind, Name: m.Metadata.Name}
	switch m.Kind {
	case KindCluster:
		var spec types.ClusterSpec
		if err := json.Unmarshal(specJSON, &spec); err != nil {
			return nil, fmt.Errorf("failed to decode cluster spec: %w", err)
		}
		spec.Annotations = annotations
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		obj.Spec = &spec
	case KindNode:
		var spec types.NodeSpec
		if err := json.Unmarshal(specJSON, &spec); err != nil {
			return nil, fmt.Errorf("failed to decode node spec: %w", err)
		}
		spec.Annotations = annotations
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		obj.Spec = &spec
	case KindService:
		var spec types.ServiceSpec
		if err := json.Unmarshal(specJSON, &spec); err != nil {
			return nil, fmt.Errorf("failed to decode service spec: %w", err)
		}
		spec.Annotations = annotations
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		obj.Spec = &spec
	case KindNetwork:
		var spec types.NetworkSpec
		if err := json.Unmarshal(specJSON, &spec); err != nil {
			return nil, fmt.Errorf("failed to decode network spec: %w", err)
		}
		spec.Annotations = annotations
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		obj.Spec = &spec
	default:
		return nil, fmt.Errorf("unsupported manifest kind: %q", m.Kind)
	}
	return obj, nil
}
