package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drovehq/drove/pkg/errdefs"
	"github.com/drovehq/drove/pkg/types"
)

const serviceYAML = `
apiVersion: drove/v1
kind: Service
metadata:
  name: web
  labels:
    tier: frontend
spec:
  mode:
    replicated:
      replicas: 3
  task:
    runtime:
      container:
        image: nginx:1.25
        env:
          - PORT=8080
  endpoint:
    mode: vip
    ports:
      - name: http
        protocol: tcp
        targetPort: 80
        publishedPort: 8080
`

func TestDecodeService(t *testing.T) {
	obj, err := Decode([]byte(serviceYAML))
	require.NoError(t, err)
	assert.Equal(t, KindService, obj.Kind)
	assert.Equal(t, "web", obj.Name)

	spec, ok := obj.Spec.(*types.ServiceSpec)
	require.True(t, ok)
	assert.Equal(t, "web", spec.Annotations.Name)
	assert.Equal(t, "frontend", spec.Annotations.Labels["tier"])
	assert.Equal(t, types.ServiceModeReplicated, spec.Mode.Kind())
	assert.Equal(t, uint64(3), spec.Mode.Replicated.Replicas)
	require.NotNil(t, spec.Task.Runtime.Container)
	assert.Equal(t, "nginx:1.25", spec.Task.Runtime.Container.Image)
	require.NotNil(t, spec.Endpoint)
	require.Len(t, spec.Endpoint.Ports, 1)
	assert.Equal(t, uint32(80), spec.Endpoint.Ports[0].TargetPort)
}

func TestDecodeInvalidSpec(t *testing.T) {
	in := `
apiVersion: drove/v1
kind: Service
metadata:
  name: web
spec:
  task:
    runtime:
      container:
        image: nginx
`
	// No mode variant set.
	_, err := Decode([]byte(in))
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidSpec(err))
}

func TestDecodeUnknownKind(t *testing.T) {
	in := `
apiVersion: drove/v1
kind: Blob
metadata:
  name: x
spec: {}
`
	_, err := Decode([]byte(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported manifest kind")
}

func TestDecodeWrongAPIVersion(t *testing.T) {
	in := `
apiVersion: drove/v2
kind: Node
metadata:
  name: n1
spec: {}
`
	_, err := Decode([]byte(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported apiVersion")
}

func TestDecodeAllMultiDocument(t *testing.T) {
	in := serviceYAML + `
---
apiVersion: drove/v1
kind: Network
metadata:
  name: backend
spec:
  internal: true
  driverConfig:
    name: overlay
`
	objs, err := DecodeAll([]byte(in))
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, KindService, objs[0].Kind)
	assert.Equal(t, KindNetwork, objs[1].Kind)

	net, ok := objs[1].Spec.(*types.NetworkSpec)
	require.True(t, ok)
	assert.True(t, net.Internal)
	assert.Equal(t, "overlay", net.DriverConfig.Name)
}

func TestDecodePreservesUnknownSpecFields(t *testing.T) {
	in := `
apiVersion: drove/v1
kind: Node
metadata:
  name: node-1
spec:
  role: worker
  futureKnob: 42
`
	obj, err := Decode([]byte(in))
	require.NoError(t, err)

	spec, ok := obj.Spec.(*types.NodeSpec)
	require.True(t, ok)
	assert.Equal(t, types.NodeRoleWorker, spec.Role)
	assert.Contains(t, spec.Extra, "futureKnob")
}
