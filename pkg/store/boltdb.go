package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"

	"github.com/drovehq/drove/pkg/errdefs"
	"github.com/drovehq/drove/pkg/events"
	"github.com/drovehq/drove/pkg/log"
	"github.com/drovehq/drove/pkg/metrics"
	"github.com/drovehq/drove/pkg/types"
)

var (
	// Bucket names
	bucketClusters = []byte("clusters")
	bucketNodes    = []byte("nodes")
	bucketServices = []byte("services")
	bucketTasks    = []byte("tasks")
	bucketNetworks = []byte("networks")
)

// record is the persisted envelope. Spec bytes are stored verbatim so that
// unknown fields written by newer versions survive a read-modify-write cycle
// here.
type record struct {
	ID        string          `json:"id"`
	Version   uint64          `json:"version"`
	Spec      json.RawMessage `json:"spec"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BoltStore implements Store using BoltDB.
type BoltStore struct {
	db     *bolt.DB
	broker *events.Broker
	logger zerolog.Logger
}

// NewBoltStore opens (or creates) the spec database under dataDir. The
// broker is optional; when set, lifecycle events are published after
// successful writes.
func NewBoltStore(dataDir string, broker *events.Broker) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "drove.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			bucketClusters,
			bucketNodes,
			bucketServices,
			bucketTasks,
			bucketNetworks,
		}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{
		db:     db,
		broker: broker,
		logger: log.WithComponent("store"),
	}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// countValidation records the validation outcome and passes the error on.
func countValidation(kind Kind, err error) error {
	outcome := "ok"
	if err != nil {
		outcome = "invalid"
	}
	metrics.ValidationsTotal.WithLabelValues(string(kind), outcome).Inc()
	return err
}

func (s *BoltStore) publish(kind Kind, action events.Action, id string, version uint64) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(&events.Event{
		Kind:     string(kind),
		Action:   action,
		ObjectID: id,
		Version:  version,
	})
}

// create inserts version 1 of a spec. The ID must not already exist.
func (s *BoltStore) create(kind Kind, bucket []byte, id string, spec []byte) (uint64, error) {
	now := time.Now().UTC()
	rec := record{ID: id, Version: 1, Spec: spec, CreatedAt: now, UpdatedAt: now}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b.Get([]byte(id)) != nil {
			return fmt.Errorf("%w: %s %s already exists", errdefs.ErrConflict, kind, id)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), data)
	})
	if err != nil {
		if errdefs.IsConflict(err) {
			metrics.StoreConflictsTotal.WithLabelValues(string(kind)).Inc()
		}
		return 0, err
	}

	metrics.StoreWritesTotal.WithLabelValues(string(kind), "create").Inc()
	metrics.SpecsTotal.WithLabelValues(string(kind)).Inc()
	s.logger.Debug().Str("kind", string(kind)).Str("id", id).Msg("spec created")
	s.publish(kind, events.ActionCreated, id, rec.Version)
	return rec.Version, nil
}

// update replaces a spec wholesale after an optimistic version check. The
// stored record is left untouched on any failure.
func (s *BoltStore) update(kind Kind, bucket []byte, id string, spec []byte, expected uint64) (uint64, error) {
	var next uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		data := b.Get([]byte(id))
		if data == nil {
			return errdefs.NotFound(string(kind), id)
		}
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		if rec.Version != expected {
			return errdefs.Conflict(string(kind), id, expected, rec.Version)
		}
		rec.Version++
		rec.Spec = spec
		rec.UpdatedAt = time.Now().UTC()
		next = rec.Version

		out, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), out)
	})
	if err != nil {
		if errdefs.IsConflict(err) {
			metrics.StoreConflictsTotal.WithLabelValues(string(kind)).Inc()
		}
		return 0, err
	}

	metrics.StoreWritesTotal.WithLabelValues(string(kind), "update").Inc()
	s.logger.Debug().Str("kind", string(kind)).Str("id", id).Uint64("version", next).Msg("spec updated")
	s.publish(kind, events.ActionUpdated, id, next)
	return next, nil
}

func (s *BoltStore) get(kind Kind, bucket []byte, id string) (*record, error) {
	var rec record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		data := b.Get([]byte(id))
		if data == nil {
			return errdefs.NotFound(string(kind), id)
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *BoltStore) list(bucket []byte) ([]*record, error) {
	var recs []*record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.ForEach(func(k, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			recs = append(recs, &rec)
			return nil
		})
	})
	return recs, err
}

func (s *BoltStore) delete(kind Kind, bucket []byte, id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b.Get([]byte(id)) == nil {
			return errdefs.NotFound(string(kind), id)
		}
		return b.Delete([]byte(id))
	})
	if err != nil {
		return err
	}

	metrics.StoreWritesTotal.WithLabelValues(string(kind), "delete").Inc()
	metrics.SpecsTotal.WithLabelValues(string(kind)).Dec()
	s.logger.Debug().Str("kind", string(kind)).Str("id", id).Msg("spec deleted")
	s.publish(kind, events.ActionDeleted, id, 0)
	return nil
}

// specName pulls the annotations name out of stored spec bytes without
// decoding the full object.
func specName(spec json.RawMessage) string {
	var peek struct {
		Annotations types.Annotations `json:"annotations"`
	}
	if err := json.Unmarshal(spec, &peek); err != nil {
		return ""
	}
	return peek.Annotations.Name
}

func (s *BoltStore) findByName(kind Kind, bucket []byte, name string) (*record, error) {
	recs, err := s.list(bucket)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if specName(rec.Spec) == name {
			return rec, nil
		}
	}
	return nil, errdefs.NotFound(string(kind), name)
}

// Cluster operations

func (s *BoltStore) CreateCluster(id string, spec *types.ClusterSpec) (uint64, error) {
	if err := countValidation(KindCluster, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.create(KindCluster, bucketClusters, id, data)
}

func (s *BoltStore) GetCluster(id string) (*types.ClusterSpec, uint64, error) {
	rec, err := s.get(KindCluster, bucketClusters, id)
	if err != nil {
		return nil, 0, err
	}
	var spec types.ClusterSpec
	if err := json.Unmarshal(rec.Spec, &spec); err != nil {
		return nil, 0, err
	}
	return &spec, rec.Version, nil
}

func (s *BoltStore) GetClusterByName(name string) (*ClusterRecord, error) {
	rec, err := s.findByName(KindCluster, bucketClusters, name)
	if err != nil {
		return nil, err
	}
	return clusterRecord(rec)
}

func (s *BoltStore) ListClusters() ([]*ClusterRecord, error) {
	recs, err := s.list(bucketClusters)
	if err != nil {
		return nil, err
	}
	out := make([]*ClusterRecord, 0, len(recs))
	for _, rec := range recs {
		cr, err := clusterRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, nil
}

func (s *BoltStore) UpdateCluster(id string, spec *types.ClusterSpec, version uint64) (uint64, error) {
	if err := countValidation(KindCluster, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.update(KindCluster, bucketClusters, id, data, version)
}

func (s *BoltStore) DeleteCluster(id string) error {
	return s.delete(KindCluster, bucketClusters, id)
}

func clusterRecord(rec *record) (*ClusterRecord, error) {
	out := &ClusterRecord{ID: rec.ID, Version: rec.Version, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
	if err := json.Unmarshal(rec.Spec, &out.Spec); err != nil {
		return nil, err
	}
	return out, nil
}

// Node operations

func (s *BoltStore) CreateNode(id string, spec *types.NodeSpec) (uint64, error) {
	if err := countValidation(KindNode, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.create(KindNode, bucketNodes, id, data)
}

func (s *BoltStore) GetNode(id string) (*types.NodeSpec, uint64, error) {
	rec, err := s.get(KindNode, bucketNodes, id)
	if err != nil {
		return nil, 0, err
	}
	var spec types.NodeSpec
	if err := json.Unmarshal(rec.Spec, &spec); err != nil {
		return nil, 0, err
	}
	return &spec, rec.Version, nil
}

func (s *BoltStore) GetNodeByName(name string) (*NodeRecord, error) {
	rec, err := s.findByName(KindNode, bucketNodes, name)
	if err != nil {
		return nil, err
	}
	return nodeRecord(rec)
}

func (s *BoltStore) ListNodes() ([]*NodeRecord, error) {
	recs, err := s.list(bucketNodes)
	if err != nil {
		return nil, err
	}
	out := make([]*NodeRecord, 0, len(recs))
	for _, rec := range recs {
		nr, err := nodeRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, nr)
	}
	return out, nil
}

func (s *BoltStore) UpdateNode(id string, spec *types.NodeSpec, version uint64) (uint64, error) {
	if err := countValidation(KindNode, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.update(KindNode, bucketNodes, id, data, version)
}

func (s *BoltStore) DeleteNode(id string) error {
	return s.delete(KindNode, bucketNodes, id)
}

func nodeRecord(rec *record) (*NodeRecord, error) {
	out := &NodeRecord{ID: rec.ID, Version: rec.Version, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
	if err := json.Unmarshal(rec.Spec, &out.Spec); err != nil {
		return nil, err
	}
	return out, nil
}

// Service operations

func (s *BoltStore) CreateService(id string, spec *types.ServiceSpec) (uint64, error) {
	if err := countValidation(KindService, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.create(KindService, bucketServices, id, data)
}

func (s *BoltStore) GetService(id string) (*types.ServiceSpec, uint64, error) {
	rec, err := s.get(KindService, bucketServices, id)
	if err != nil {
		return nil, 0, err
	}
	var spec types.ServiceSpec
	if err := json.Unmarshal(rec.Spec, &spec); err != nil {
		return nil, 0, err
	}
	return &spec, rec.Version, nil
}

func (s *BoltStore) GetServiceByName(name string) (*ServiceRecord, error) {
	rec, err := s.findByName(KindService, bucketServices, name)
	if err != nil {
		return nil, err
	}
	return serviceRecord(rec)
}

func (s *BoltStore) ListServices() ([]*ServiceRecord, error) {
	recs, err := s.list(bucketServices)
	if err != nil {
		return nil, err
	}
	out := make([]*ServiceRecord, 0, len(recs))
	for _, rec := range recs {
		sr, err := serviceRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, nil
}

func (s *BoltStore) UpdateService(id string, spec *types.ServiceSpec, version uint64) (uint64, error) {
	if err := countValidation(KindService, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.update(KindService, bucketServices, id, data, version)
}

func (s *BoltStore) DeleteService(id string) error {
	return s.delete(KindService, bucketServices, id)
}

func serviceRecord(rec *record) (*ServiceRecord, error) {
	out := &ServiceRecord{ID: rec.ID, Version: rec.Version, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
	if err := json.Unmarshal(rec.Spec, &out.Spec); err != nil {
		return nil, err
	}
	return out, nil
}

// Task operations

func (s *BoltStore) CreateTask(id string, spec *types.TaskSpec) (uint64, error) {
	if err := countValidation(KindTask, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.create(KindTask, bucketTasks, id, data)
}

func (s *BoltStore) GetTask(id string) (*types.TaskSpec, uint64, error) {
	rec, err := s.get(KindTask, bucketTasks, id)
	if err != nil {
		return nil, 0, err
	}
	var spec types.TaskSpec
	if err := json.Unmarshal(rec.Spec, &spec); err != nil {
		return nil, 0, err
	}
	return &spec, rec.Version, nil
}

func (s *BoltStore) ListTasks() ([]*TaskRecord, error) {
	recs, err := s.list(bucketTasks)
	if err != nil {
		return nil, err
	}
	out := make([]*TaskRecord, 0, len(recs))
	for _, rec := range recs {
		tr := &TaskRecord{ID: rec.ID, Version: rec.Version, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
		if err := json.Unmarshal(rec.Spec, &tr.Spec); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, nil
}

func (s *BoltStore) UpdateTask(id string, spec *types.TaskSpec, version uint64) (uint64, error) {
	if err := countValidation(KindTask, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.update(KindTask, bucketTasks, id, data, version)
}

func (s *BoltStore) DeleteTask(id string) error {
	return s.delete(KindTask, bucketTasks, id)
}

// Network operations

func (s *BoltStore) CreateNetwork(id string, spec *types.NetworkSpec) (uint64, error) {
	if err := countValidation(KindNetwork, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.create(KindNetwork, bucketNetworks, id, data)
}

func (s *BoltStore) GetNetwork(id string) (*types.NetworkSpec, uint64, error) {
	rec, err := s.get(KindNetwork, bucketNetworks, id)
	if err != nil {
		return nil, 0, err
	}
	var spec types.NetworkSpec
	if err := json.Unmarshal(rec.Spec, &spec); err != nil {
		return nil, 0, err
	}
	return &spec, rec.Version, nil
}

func (s *BoltStore) GetNetworkByName(name string) (*NetworkRecord, error) {
	rec, err := s.findByName(KindNetwork, bucketNetworks, name)
	if err != nil {
		return nil, err
	}
	return networkRecord(rec)
}

func (s *BoltStore) ListNetworks() ([]*NetworkRecord, error) {
	recs, err := s.list(bucketNetworks)
	if err != nil {
		return nil, err
	}
	out := make([]*NetworkRecord, 0, len(recs))
	for _, rec := range recs {
		nr, err := networkRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, nr)
	}
	return out, nil
}

func (s *BoltStore) UpdateNetwork(id string, spec *types.NetworkSpec, version uint64) (uint64, error) {
	if err := countValidation(KindNetwork, spec.Validate()); err != nil {
		return 0, err
	}
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	return s.update(KindNetwork, bucketNetworks, id, data, version)
}

func (s *BoltStore) DeleteNetwork(id string) error {
	return s.delete(KindNetwork, bucketNetworks, id)
}

func networkRecord(rec *record) (*NetworkRecord, error) {
	out := &NetworkRecord{ID: rec.ID, Version: rec.Version, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
	if err := json.Unmarshal(rec.Spec, &out.Spec); err != nil {
		return nil, err
	}
	return out, nil
}
