package store

import (
	"time"

	"github.com/drovehq/drove/pkg/types"
)

// Kind names an object kind in the store.
type Kind string

const (
	KindCluster Kind = "cluster"
	KindNode    Kind = "node"
	KindService Kind = "service"
	KindTask    Kind = "task"
	KindNetwork Kind = "network"
)

// Per-kind records pair a stored spec with its owning-object identifier and
// version. The version is monotonically increasing: 1 on create, +1 per
// accepted update.

// ClusterRecord is a stored ClusterSpec.
type ClusterRecord struct {
	ID        string
	Version   uint64
	Spec      types.ClusterSpec
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NodeRecord is a stored NodeSpec.
type NodeRecord struct {
	ID        string
	Version   uint64
	Spec      types.NodeSpec
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceRecord is a stored ServiceSpec.
type ServiceRecord struct {
	ID        string
	Version   uint64
	Spec      types.ServiceSpec
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskRecord is a stored TaskSpec.
type TaskRecord struct {
	ID        string
	Version   uint64
	Spec      types.TaskSpec
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NetworkRecord is a stored NetworkSpec.
type NetworkRecord struct {
	ID        string
	Version   uint64
	Spec      types.NetworkSpec
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists validated specs with optimistic concurrency. Every write
// validates first; an invalid spec never reaches disk. Create fails with
// Conflict when the ID exists; Update fails with Conflict when the expected
// version does not match the stored one; Get and Delete fail with NotFound
// for absent IDs. Stored bytes are the submitted spec verbatim, unknown
// fields included.
type Store interface {
	// Clusters
	CreateCluster(id string, spec *types.ClusterSpec) (uint64, error)
	GetCluster(id string) (*types.ClusterSpec, uint64, error)
	GetClusterByName(name string) (*ClusterRecord, error)
	ListClusters() ([]*ClusterRecord, error)
	UpdateCluster(id string, spec *types.ClusterSpec, version uint64) (uint64, error)
	DeleteCluster(id string) error

	// Nodes
	CreateNode(id string, spec *types.NodeSpec) (uint64, error)
	GetNode(id string) (*types.NodeSpec, uint64, error)
	GetNodeByName(name string) (*NodeRecord, error)
	ListNodes() ([]*NodeRecord, error)
	UpdateNode(id string, spec *types.NodeSpec, version uint64) (uint64, error)
	DeleteNode(id string) error

	// Services
	CreateService(id string, spec *types.ServiceSpec) (uint64, error)
	GetService(id string) (*types.ServiceSpec, uint64, error)
	GetServiceByName(name string) (*ServiceRecord, error)
	ListServices() ([]*ServiceRecord, error)
	UpdateService(id string, spec *types.ServiceSpec, version uint64) (uint64, error)
	DeleteService(id string) error

	// Tasks (system-created, addressed by ID only)
	CreateTask(id string, spec *types.TaskSpec) (uint64, error)
	GetTask(id string) (*types.TaskSpec, uint64, error)
	ListTasks() ([]*TaskRecord, error)
	UpdateTask(id string, spec *types.TaskSpec, version uint64) (uint64, error)
	DeleteTask(id string) error

	// Networks
	CreateNetwork(id string, spec *types.NetworkSpec) (uint64, error)
	GetNetwork(id string) (*types.NetworkSpec, uint64, error)
	GetNetworkByName(name string) (*NetworkRecord, error)
	ListNetworks() ([]*NetworkRecord, error)
	UpdateNetwork(id string, spec *types.NetworkSpec, version uint64) (uint64, error)
	DeleteNetwork(id string) error

	// Utility
	Close() error
}
