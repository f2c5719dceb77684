package types

// The wire format underlying these specs expresses unions as optional
// sibling fields, so nothing structurally prevents a caller from populating
// two variants. The setters below clear siblings, the Kind accessors report
// which variant is set, and validation rejects zero or multiple variants.

// ServiceModeKind identifies the replication variant of a service.
type ServiceModeKind string

const (
	ServiceModeUnset      ServiceModeKind = ""
	ServiceModeReplicated ServiceModeKind = "replicated"
	ServiceModeGlobal     ServiceModeKind = "global"
)

// ServiceMode is the replication mode of a service: exactly one of
// replicated or global.
type ServiceMode struct {
	Replicated *ReplicatedService `json:"replicated,omitempty"`
	Global     *GlobalService     `json:"global,omitempty"`
}

// SetReplicated selects replicated mode with the given replica count,
// clearing any other variant.
func (m *ServiceMode) SetReplicated(replicas uint64) {
	m.Replicated = &ReplicatedService{Replicas: replicas}
	m.Global = nil
}

// SetGlobal selects global mode, clearing any other variant.
func (m *ServiceMode) SetGlobal() {
	m.Global = &GlobalService{}
	m.Replicated = nil
}

// Kind returns the selected variant, or ServiceModeUnset when zero or more
// than one variant is populated. Use Validate to distinguish the two
// malformed cases.
func (m ServiceMode) Kind() ServiceModeKind {
	switch {
	case m.Replicated != nil && m.Global == nil:
		return ServiceModeReplicated
	case m.Global != nil && m.Replicated == nil:
		return ServiceModeGlobal
	}
	return ServiceModeUnset
}

// variants returns how many variants are populated.
func (m ServiceMode) variants() int {
	n := 0
	if m.Replicated != nil {
		n++
	}
	if m.Global != nil {
		n++
	}
	return n
}

// TaskRuntimeKind identifies the runtime variant of a task.
type TaskRuntimeKind string

const (
	TaskRuntimeUnset     TaskRuntimeKind = ""
	TaskRuntimeContainer TaskRuntimeKind = "container"
)

// TaskRuntime is the runtime slot of a task. Container is the only variant
// today; the union shape leaves room for more.
type TaskRuntime struct {
	Container *ContainerSpec `json:"container,omitempty"`
}

// SetContainer selects the container runtime with the given spec, clearing
// any other variant.
func (r *TaskRuntime) SetContainer(c ContainerSpec) {
	r.Container = &c
}

// Kind returns the selected variant, or TaskRuntimeUnset when none is
// populated.
func (r TaskRuntime) Kind() TaskRuntimeKind {
	if r.Container != nil {
		return TaskRuntimeContainer
	}
	return TaskRuntimeUnset
}

func (r TaskRuntime) variants() int {
	n := 0
	if r.Container != nil {
		n++
	}
	return n
}
