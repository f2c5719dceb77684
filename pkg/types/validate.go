package types

import (
	"strconv"
	"strings"

	"github.com/drovehq/drove/pkg/errdefs"
)

// Validation runs at submission time, before any storage write. Each
// top-level kind aggregates every violation into a single error so a client
// can fix all of them in one round trip. Empty enum values are legal where a
// read-time default exists; only unknown non-empty values are rejected.

// Validate checks a NodeSpec.
func (s *NodeSpec) Validate() error {
	var vs errdefs.Violations
	if s.Annotations.Name == "" {
		vs.Add("annotations.name", "name is required")
	}
	switch s.Role {
	case "", NodeRoleWorker, NodeRoleManager:
	default:
		vs.Addf("role", "unknown role %q", s.Role)
	}
	switch s.Membership {
	case "", NodeMembershipPending, NodeMembershipAccepted, NodeMembershipRejected:
	default:
		vs.Addf("membership", "unknown membership %q", s.Membership)
	}
	switch s.Availability {
	case "", NodeAvailabilityActive, NodeAvailabilityPause, NodeAvailabilityDrain:
	default:
		vs.Addf("availability", "unknown availability %q", s.Availability)
	}
	return vs.Err()
}

// Validate checks a ServiceSpec, including its embedded task.
func (s *ServiceSpec) Validate() error {
	var vs errdefs.Violations
	if s.Annotations.Name == "" {
		vs.Add("annotations.name", "name is required")
	}
	switch s.Mode.variants() {
	case 0:
		vs.Add("mode", "exactly one of replicated or global must be set, got none")
	case 1:
	default:
		vs.Add("mode", "exactly one of replicated or global must be set, got both")
	}
	vs.Merge("task", s.Task.Validate())
	if s.Endpoint != nil {
		vs.Merge("endpoint", s.Endpoint.Validate())
	}
	for i, na := range s.Networks {
		if na.Target == "" {
			vs.Add("networks["+strconv.Itoa(i)+"].target", "target is required")
		}
	}
	return vs.Err()
}

// Validate checks a TaskSpec and its runtime variant.
func (s *TaskSpec) Validate() error {
	var vs errdefs.Violations
	switch s.Runtime.variants() {
	case 0:
		vs.Add("runtime", "exactly one runtime must be set, got none")
	case 1:
		vs.Merge("runtime.container", s.Runtime.Container.Validate())
	default:
		vs.Add("runtime", "exactly one runtime must be set, got multiple")
	}
	if s.Restart != nil {
		switch s.Restart.Condition {
		case "", RestartOnNone, RestartOnFailure, RestartOnAny:
		default:
			vs.Addf("restart.condition", "unknown restart condition %q", s.Restart.Condition)
		}
	}
	return vs.Err()
}

// Validate checks a ContainerSpec. The image reference is opaque at this
// layer and deliberately not normalized or resolved.
func (s *ContainerSpec) Validate() error {
	var vs errdefs.Violations
	if s.Image == "" {
		vs.Add("image", "image reference is required")
	}
	for i, env := range s.Env {
		if idx := strings.Index(env, "="); idx < 1 {
			vs.Addf("env["+strconv.Itoa(i)+"]", "%q must be of the form KEY=VALUE", env)
		}
	}
	for i, m := range s.Mounts {
		prefix := "mounts[" + strconv.Itoa(i) + "]"
		switch m.Type {
		case "", MountTypeBind, MountTypeVolume, MountTypeTmpfs:
		default:
			vs.Addf(prefix+".type", "unknown mount type %q", m.Type)
		}
		if m.Target == "" {
			vs.Add(prefix+".target", "target is required")
		}
	}
	return vs.Err()
}

// Validate checks an EndpointSpec.
func (s *EndpointSpec) Validate() error {
	var vs errdefs.Violations
	switch s.Mode {
	case "", ResolutionModeVIP, ResolutionModeDNSRR:
	default:
		vs.Addf("mode", "unknown resolution mode %q", s.Mode)
	}
	switch s.Ingress {
	case "", IngressRoutingPorts, IngressRoutingDisabled:
	default:
		vs.Addf("ingress", "unknown ingress routing %q", s.Ingress)
	}
	for i, p := range s.Ports {
		prefix := "ports[" + strconv.Itoa(i) + "]"
		switch p.Protocol {
		case "", ProtocolTCP, ProtocolUDP:
		default:
			vs.Addf(prefix+".protocol", "unknown protocol %q", p.Protocol)
		}
		if p.TargetPort == 0 {
			vs.Add(prefix+".targetPort", "targetPort is required")
		}
	}
	return vs.Err()
}

// Validate checks a NetworkSpec.
func (s *NetworkSpec) Validate() error {
	var vs errdefs.Violations
	if s.Annotations.Name == "" {
		vs.Add("annotations.name", "name is required")
	}
	if s.DriverConfig != nil && s.DriverConfig.Name == "" {
		vs.Add("driverConfig.name", "driver name is required")
	}
	if s.IPAM != nil && s.IPAM.Driver != nil && s.IPAM.Driver.Name == "" {
		vs.Add("ipam.driver.name", "driver name is required")
	}
	return vs.Err()
}

// Validate checks a ClusterSpec. Every missing sub-config is reported, not
// just the first.
func (s *ClusterSpec) Validate() error {
	var vs errdefs.Violations
	if s.Annotations.Name == "" {
		vs.Add("annotations.name", "name is required")
	}
	if s.AcceptancePolicy == nil {
		vs.Add("acceptancePolicy", "acceptance policy is required")
	} else {
		for i, p := range s.AcceptancePolicy.Policies {
			switch p.Role {
			case NodeRoleWorker, NodeRoleManager:
			default:
				vs.Addf("acceptancePolicy.policies["+strconv.Itoa(i)+"].role", "unknown role %q", p.Role)
			}
		}
	}
	if s.Orchestration == nil {
		vs.Add("orchestration", "orchestration config is required")
	}
	if s.Raft == nil {
		vs.Add("raft", "raft config is required")
	}
	if s.Dispatcher == nil {
		vs.Add("dispatcher", "dispatcher config is required")
	}
	if s.CA == nil {
		vs.Add("ca", "CA config is required")
	}
	return vs.Err()
}

