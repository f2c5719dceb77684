package types

import (
	"encoding/json"
	"time"
)

// Duration is a fixed-precision duration in nanoseconds. Specs carry plain
// integers on the wire so that every cluster member, regardless of version,
// reads the same value back.
type Duration int64

// DurationOf converts a time.Duration into a spec Duration.
func DurationOf(d time.Duration) Duration { return Duration(d.Nanoseconds()) }

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Annotations carry the user-assigned name and labels of a spec. Every
// top-level spec has annotations; label keys are unique by construction
// (map semantics).
type Annotations struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
}

// NodeRole defines the role of a node.
type NodeRole string

const (
	NodeRoleWorker  NodeRole = "worker"
	NodeRoleManager NodeRole = "manager"
)

// NodeMembership tracks admission of a node into the cluster's trusted set.
type NodeMembership string

const (
	NodeMembershipPending  NodeMembership = "pending"
	NodeMembershipAccepted NodeMembership = "accepted"
	NodeMembershipRejected NodeMembership = "rejected"
)

// NodeAvailability controls scheduling eligibility of a node.
type NodeAvailability string

const (
	// NodeAvailabilityActive allows new tasks on the node.
	NodeAvailabilityActive NodeAvailability = "active"
	// NodeAvailabilityPause stops new tasks but keeps running ones.
	NodeAvailabilityPause NodeAvailability = "pause"
	// NodeAvailabilityDrain stops new tasks and evicts running ones.
	// Eviction is carried out by the reconciler, not this layer.
	NodeAvailabilityDrain NodeAvailability = "drain"
)

// NodeSpec is the administrative intent for a single node. Membership
// transitions (pending to accepted or rejected) are driven by the admission
// pipeline; this object only records the requested state.
type NodeSpec struct {
	Annotations  Annotations      `json:"annotations"`
	Role         NodeRole         `json:"role,omitempty"`
	Membership   NodeMembership   `json:"membership,omitempty"`
	Availability NodeAvailability `json:"availability,omitempty"`

	// Extra preserves fields written by newer versions. Never interpreted,
	// only carried through serialization round trips.
	Extra map[string]json.RawMessage `json:"-"`
}

// ServiceSpec is the user intent for a repeated or distributed workload.
type ServiceSpec struct {
	Annotations Annotations         `json:"annotations"`
	Task        TaskSpec            `json:"task"`
	Mode        ServiceMode         `json:"mode"`
	Update      *UpdateConfig       `json:"update,omitempty"`
	Networks    []NetworkAttachment `json:"networks,omitempty"`
	Endpoint    *EndpointSpec       `json:"endpoint,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// NetworkAttachment references a network by opaque target identifier. The
// reference is resolved by the store at allocation time, never inside the
// spec itself.
type NetworkAttachment struct {
	Target  string   `json:"target"`
	Aliases []string `json:"aliases,omitempty"`
}

// ReplicatedService runs a fixed number of identical tasks. Zero replicas is
// a valid scaled-to-zero state.
type ReplicatedService struct {
	Replicas uint64 `json:"replicas"`
}

// GlobalService runs one task on every eligible node.
type GlobalService struct{}

// UpdateConfig controls how task updates are rolled out.
type UpdateConfig struct {
	Parallelism uint64   `json:"parallelism,omitempty"`
	Delay       Duration `json:"delay,omitempty"`
}

// TaskSpec is the template for the reconciliation unit: a runtime variant
// plus scheduling-relevant configuration. Absent restart policy or placement
// means system defaults apply at read time; the stored spec is not rewritten.
type TaskSpec struct {
	Runtime   TaskRuntime           `json:"runtime"`
	Resources *ResourceRequirements `json:"resources,omitempty"`
	Restart   *RestartPolicy        `json:"restart,omitempty"`
	Placement *Placement            `json:"placement,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// ContainerSpec holds the runtime parameters of the unit of execution. The
// image reference is opaque and unresolved at spec time. An empty command
// means the image entrypoint is used; args are ignored unless a command is
// set.
type ContainerSpec struct {
	Image           string            `json:"image"`
	Labels          map[string]string `json:"labels,omitempty"`
	Command         []string          `json:"command,omitempty"`
	Args            []string          `json:"args,omitempty"`
	Env             []string          `json:"env,omitempty"`
	Dir             string            `json:"dir,omitempty"`
	User            string            `json:"user,omitempty"`
	Mounts          []Mount           `json:"mounts,omitempty"`
	StopGracePeriod Duration          `json:"stopGracePeriod,omitempty"`
}

// MountType defines the kind of a mount.
type MountType string

const (
	MountTypeBind   MountType = "bind"
	MountTypeVolume MountType = "volume"
	MountTypeTmpfs  MountType = "tmpfs"
)

// Mount defines a filesystem mount inside a container.
type Mount struct {
	Type     MountType `json:"type,omitempty"`
	Source   string    `json:"source,omitempty"`
	Target   string    `json:"target"`
	ReadOnly bool      `json:"readOnly,omitempty"`
}

// ResourceRequirements defines resource limits and reservations for a task.
type ResourceRequirements struct {
	Limits       *Resources `json:"limits,omitempty"`
	Reservations *Resources `json:"reservations,omitempty"`
}

// Resources is an amount of CPU and memory. CPU is measured in billionths
// of a core.
type Resources struct {
	NanoCPUs    int64 `json:"nanoCPUs,omitempty"`
	MemoryBytes int64 `json:"memoryBytes,omitempty"`
}

// RestartCondition defines when a finished task is restarted.
type RestartCondition string

const (
	RestartOnNone    RestartCondition = "none"
	RestartOnFailure RestartCondition = "on-failure"
	RestartOnAny     RestartCondition = "any"
)

// RestartPolicy defines restart behavior for a task's containers.
type RestartPolicy struct {
	Condition   RestartCondition `json:"condition,omitempty"`
	Delay       Duration         `json:"delay,omitempty"`
	MaxAttempts uint64           `json:"maxAttempts,omitempty"`
	Window      Duration         `json:"window,omitempty"`
}

// Placement restricts the set of nodes a task may run on.
type Placement struct {
	Constraints []string `json:"constraints,omitempty"`
}

// ResolutionMode defines how a service name resolves for internal load
// balancing.
type ResolutionMode string

const (
	// ResolutionModeVIP resolves to a stable virtual IP.
	ResolutionModeVIP ResolutionMode = "vip"
	// ResolutionModeDNSRR resolves to task addresses round-robin. Clients
	// must not cache results beyond the record TTL.
	ResolutionModeDNSRR ResolutionMode = "dnsrr"
)

// IngressRouting defines whether published ports participate in the
// load-balanced routing mesh.
type IngressRouting string

const (
	IngressRoutingPorts    IngressRouting = "ports"
	IngressRoutingDisabled IngressRouting = "disabled"
)

// PortProtocol is the transport protocol of an exposed port.
type PortProtocol string

const (
	ProtocolTCP PortProtocol = "tcp"
	ProtocolUDP PortProtocol = "udp"
)

// PortConfig describes one exposed port of a service.
type PortConfig struct {
	Name          string       `json:"name,omitempty"`
	Protocol      PortProtocol `json:"protocol,omitempty"`
	TargetPort    uint32       `json:"targetPort"`
	PublishedPort uint32       `json:"publishedPort,omitempty"`
}

// EndpointSpec describes how a service is discovered and exposed.
type EndpointSpec struct {
	Mode    ResolutionMode `json:"mode,omitempty"`
	Ingress IngressRouting `json:"ingress,omitempty"`
	Ports   []PortConfig   `json:"ports,omitempty"`
}

// Driver names a driver and its opaque options.
type Driver struct {
	Name    string            `json:"name"`
	Options map[string]string `json:"options,omitempty"`
}

// IPAMConfig is one address-pool configuration handed to the allocator.
type IPAMConfig struct {
	Subnet  string `json:"subnet,omitempty"`
	Range   string `json:"range,omitempty"`
	Gateway string `json:"gateway,omitempty"`
}

// IPAMOptions configures address management for a network.
type IPAMOptions struct {
	Driver  *Driver      `json:"driver,omitempty"`
	Configs []IPAMConfig `json:"configs,omitempty"`
}

// NetworkSpec is the user intent for a network. Internal networks get no
// default-gateway exposure; that is enforced by the allocator, not here.
type NetworkSpec struct {
	Annotations  Annotations  `json:"annotations"`
	DriverConfig *Driver      `json:"driverConfig,omitempty"`
	IPv6Enabled  bool         `json:"ipv6Enabled,omitempty"`
	Internal     bool         `json:"internal,omitempty"`
	IPAM         *IPAMOptions `json:"ipam,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// RoleAdmissionPolicy controls admission for one node role.
type RoleAdmissionPolicy struct {
	Role       NodeRole `json:"role"`
	Autoaccept bool     `json:"autoaccept,omitempty"`
	Secret     string   `json:"secret,omitempty"`
}

// AcceptancePolicy defines how join requests are admitted, per role.
type AcceptancePolicy struct {
	Policies []RoleAdmissionPolicy `json:"policies,omitempty"`
}

// OrchestrationConfig holds cluster-wide orchestration settings.
type OrchestrationConfig struct {
	// TaskHistoryRetentionLimit is the number of finished tasks retained
	// per slot for inspection.
	TaskHistoryRetentionLimit int64 `json:"taskHistoryRetentionLimit,omitempty"`
}

// RaftConfig holds tuning for the consensus log. Interpreted by the raft
// subsystem; stored verbatim here.
type RaftConfig struct {
	SnapshotInterval           uint64 `json:"snapshotInterval,omitempty"`
	KeepOldSnapshots           uint64 `json:"keepOldSnapshots,omitempty"`
	LogEntriesForSlowFollowers uint64 `json:"logEntriesForSlowFollowers,omitempty"`
	HeartbeatTick              uint32 `json:"heartbeatTick,omitempty"`
	ElectionTick               uint32 `json:"electionTick,omitempty"`
}

// DispatcherConfig holds settings for the agent dispatcher.
type DispatcherConfig struct {
	HeartbeatPeriod Duration `json:"heartbeatPeriod,omitempty"`
}

// CAConfig holds certificate-authority settings.
type CAConfig struct {
	NodeCertExpiry Duration `json:"nodeCertExpiry,omitempty"`
}

// ClusterSpec aggregates cluster-wide policy. All five sub-configs are
// mandatory; a ClusterSpec is never partially configured.
type ClusterSpec struct {
	Annotations      Annotations          `json:"annotations"`
	AcceptancePolicy *AcceptancePolicy    `json:"acceptancePolicy"`
	Orchestration    *OrchestrationConfig `json:"orchestration"`
	Raft             *RaftConfig          `json:"raft"`
	Dispatcher       *DispatcherConfig    `json:"dispatcher"`
	CA               *CAConfig            `json:"ca"`

	Extra map[string]json.RawMessage `json:"-"`
}
