package defaults

import (
	"time"

	"github.com/drovehq/drove/pkg/types"
)

// Defaults are resolved here, at read time, by the consuming reconciler.
// They are never baked into a stored spec: the store keeps exactly what the
// user submitted, and these resolvers fill the gaps when a field is absent.

const (
	// StopGracePeriod is how long a task gets to stop before being killed.
	StopGracePeriod = 10 * time.Second

	// RestartDelay is the pause between restart attempts.
	RestartDelay = 5 * time.Second

	// UpdateParallelism is how many tasks are updated at a time.
	UpdateParallelism uint64 = 1

	// HeartbeatPeriod is how often agents report to the dispatcher.
	HeartbeatPeriod = 5 * time.Second

	// NodeCertExpiry is the validity window of issued node certificates.
	NodeCertExpiry = 90 * 24 * time.Hour

	// TaskHistoryRetentionLimit is how many finished tasks are kept per slot.
	TaskHistoryRetentionLimit int64 = 5
)

// RestartPolicy returns the effective restart policy for a task.
func RestartPolicy(spec *types.TaskSpec) types.RestartPolicy {
	policy := types.RestartPolicy{
		Condition: types.RestartOnAny,
		Delay:     types.DurationOf(RestartDelay),
	}
	if spec == nil || spec.Restart == nil {
		return policy
	}
	out := *spec.Restart
	if out.Condition == "" {
		out.Condition = policy.Condition
	}
	if out.Delay == 0 {
		out.Delay = policy.Delay
	}
	return out
}

// UpdateConfig returns the effective update configuration for a service.
func UpdateConfig(spec *types.ServiceSpec) types.UpdateConfig {
	cfg := types.UpdateConfig{Parallelism: UpdateParallelism}
	if spec == nil || spec.Update == nil {
		return cfg
	}
	out := *spec.Update
	if out.Parallelism == 0 {
		out.Parallelism = cfg.Parallelism
	}
	return out
}

// StopGrace returns the effective stop grace period for a container.
func StopGrace(spec *types.ContainerSpec) types.Duration {
	if spec == nil || spec.StopGracePeriod == 0 {
		return types.DurationOf(StopGracePeriod)
	}
	return spec.StopGracePeriod
}

// ResolutionMode returns the effective service-discovery mode for an
// endpoint. Virtual IP is the default.
func ResolutionMode(spec *types.EndpointSpec) types.ResolutionMode {
	if spec == nil || spec.Mode == "" {
		return types.ResolutionModeVIP
	}
	return spec.Mode
}

// Availability returns the effective scheduling availability of a node.
func Availability(spec *types.NodeSpec) types.NodeAvailability {
	if spec == nil || spec.Availability == "" {
		return types.NodeAvailabilityActive
	}
	return spec.Availability
}

// Membership returns the effective membership of a node. Nodes start
// pending until admission decides otherwise.
func Membership(spec *types.NodeSpec) types.NodeMembership {
	if spec == nil || spec.Membership == "" {
		return types.NodeMembershipPending
	}
	return spec.Membership
}

// Dispatcher returns the effective dispatcher configuration.
func Dispatcher(cfg *types.DispatcherConfig) types.DispatcherConfig {
	out := types.DispatcherConfig{HeartbeatPeriod: types.DurationOf(HeartbeatPeriod)}
	if cfg != nil && cfg.HeartbeatPeriod != 0 {
		out.HeartbeatPeriod = cfg.HeartbeatPeriod
	}
	return out
}

// CA returns the effective certificate-authority configuration.
func CA(cfg *types.CAConfig) types.CAConfig {
	out := types.CAConfig{NodeCertExpiry: types.DurationOf(NodeCertExpiry)}
	if cfg != nil && cfg.NodeCertExpiry != 0 {
		out.NodeCertExpiry = cfg.NodeCertExpiry
	}
	return out
}

// Orchestration returns the effective orchestration configuration.
func Orchestration(cfg *types.OrchestrationConfig) types.OrchestrationConfig {
	out := types.OrchestrationConfig{TaskHistoryRetentionLimit: TaskHistoryRetentionLimit}
	if cfg != nil && cfg.TaskHistoryRetentionLimit != 0 {
		out.TaskHistoryRetentionLimit = cfg.TaskHistoryRetentionLimit
	}
	return out
}
