package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drovehq/drove/pkg/errdefs"
)

func validServiceSpec() *ServiceSpec {
	spec := &ServiceSpec{
		Annotations: Annotations{Name: "web"},
	}
	spec.Mode.SetReplicated(3)
	spec.Task.Runtime.SetContainer(ContainerSpec{Image: "nginx:1.25"})
	return spec
}

func validClusterSpec() *ClusterSpec {
	return &ClusterSpec{
		Annotations:      Annotations{Name: "default"},
		AcceptancePolicy: &AcceptancePolicy{},
		Orchestration:    &OrchestrationConfig{},
		Raft:             &RaftConfig{},
		Dispatcher:       &DispatcherConfig{},
		CA:               &CAConfig{},
	}
}

func TestServiceSpecModeExclusivity(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServiceSpec)
		wantErr bool
	}{
		{
			name:   "replicated only",
			mutate: func(s *ServiceSpec) { s.Mode.SetReplicated(3) },
		},
		{
			name:   "global only",
			mutate: func(s *ServiceSpec) { s.Mode.SetGlobal() },
		},
		{
			name:   "scaled to zero is valid",
			mutate: func(s *ServiceSpec) { s.Mode.SetReplicated(0) },
		},
		{
			name:    "neither variant",
			mutate:  func(s *ServiceSpec) { s.Mode = ServiceMode{} },
			wantErr: true,
		},
		{
			name: "both variants",
			mutate: func(s *ServiceSpec) {
				s.Mode.Replicated = &ReplicatedService{Replicas: 1}
				s.Mode.Global = &GlobalService{}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validServiceSpec()
			tt.mutate(spec)
			err := spec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errdefs.IsInvalidSpec(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskSpecRuntimeRequired(t *testing.T) {
	spec := validServiceSpec()
	spec.Task.Runtime = TaskRuntime{}

	err := spec.Validate()
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidSpec(err))
	assert.Contains(t, err.Error(), "task.runtime")
}

func TestContainerSpecEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     []string
		wantErr bool
	}{
		{name: "well formed", env: []string{"FOO=bar"}},
		{name: "empty value", env: []string{"FOO="}},
		{name: "value contains equals", env: []string{"FOO=a=b"}},
		{name: "no equals", env: []string{"FOO"}, wantErr: true},
		{name: "empty key", env: []string{"=bar"}, wantErr: true},
		{name: "one bad among good", env: []string{"A=1", "B", "C=3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &ContainerSpec{Image: "busybox", Env: tt.env}
			err := spec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errdefs.IsInvalidSpec(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClusterSpecMissingSubConfigs(t *testing.T) {
	spec := validClusterSpec()
	spec.Raft = nil
	spec.CA = nil

	err := spec.Validate()
	require.Error(t, err)

	var ve *errdefs.ValidationError
	require.True(t, errors.As(err, &ve))

	// Both missing configs must be listed, not just the first.
	fields := make([]string, 0, len(ve.Violations))
	for _, v := range ve.Violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "raft")
	assert.Contains(t, fields, "ca")
	assert.Len(t, fields, 2)
}

func TestClusterSpecComplete(t *testing.T) {
	assert.NoError(t, validClusterSpec().Validate())
}

func TestNodeSpecEnums(t *testing.T) {
	tests := []struct {
		name    string
		spec    NodeSpec
		wantErr bool
	}{
		{
			name: "all enums valid",
			spec: NodeSpec{
				Annotations:  Annotations{Name: "node-1"},
				Role:         NodeRoleWorker,
				Membership:   NodeMembershipAccepted,
				Availability: NodeAvailabilityActive,
			},
		},
		{
			name: "unset enums default at read time",
			spec: NodeSpec{Annotations: Annotations{Name: "node-1"}},
		},
		{
			// No transition restriction at this layer; eviction is the
			// reconciler's job.
			name: "drain is valid",
			spec: NodeSpec{
				Annotations:  Annotations{Name: "node-1"},
				Availability: NodeAvailabilityDrain,
			},
		},
		{
			name:    "unknown availability",
			spec:    NodeSpec{Annotations: Annotations{Name: "node-1"}, Availability: "sometimes"},
			wantErr: true,
		},
		{
			name:    "unknown role",
			spec:    NodeSpec{Annotations: Annotations{Name: "node-1"}, Role: "admin"},
			wantErr: true,
		},
		{
			name:    "missing name",
			spec:    NodeSpec{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errdefs.IsInvalidSpec(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServiceSpecAggregatesViolations(t *testing.T) {
	spec := &ServiceSpec{} // no name, no mode, no runtime

	err := spec.Validate()
	require.Error(t, err)

	var ve *errdefs.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.GreaterOrEqual(t, len(ve.Violations), 3)
}

func TestEndpointSpecValidation(t *testing.T) {
	spec := validServiceSpec()
	spec.Endpoint = &EndpointSpec{
		Mode:    ResolutionModeDNSRR,
		Ingress: IngressRoutingDisabled,
		Ports:   []PortConfig{{Protocol: ProtocolTCP, TargetPort: 8080}},
	}
	assert.NoError(t, spec.Validate())

	spec.Endpoint.Mode = "multicast"
	spec.Endpoint.Ports = append(spec.Endpoint.Ports, PortConfig{Protocol: "sctp", TargetPort: 0})
	err := spec.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint.mode")
	assert.Contains(t, err.Error(), "endpoint.ports[1].protocol")
	assert.Contains(t, err.Error(), "endpoint.ports[1].targetPort")
}

func TestNetworkAttachmentTarget(t *testing.T) {
	spec := validServiceSpec()
	spec.Networks = []NetworkAttachment{{Target: "net-1"}, {Target: ""}}

	err := spec.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "networks[1].target")
}
