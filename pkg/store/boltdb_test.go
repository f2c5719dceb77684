package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drovehq/drove/pkg/errdefs"
	"github.com/drovehq/drove/pkg/events"
	"github.com/drovehq/drove/pkg/types"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testServiceSpec(name string) *types.ServiceSpec {
	spec := &types.ServiceSpec{Annotations: types.Annotations{Name: name}}
	spec.Mode.SetReplicated(2)
	spec.Task.Runtime.SetContainer(types.ContainerSpec{Image: "nginx:1.25"})
	return spec
}

func TestCreateAndGetService(t *testing.T) {
	st := newTestStore(t)
	spec := testServiceSpec("web")

	version, err := st.CreateService("svc-1", spec)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)

	got, gotVersion, err := st.GetService("svc-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gotVersion)
	assert.True(t, types.Equal(spec, got), types.Diff(spec, got))
}

func TestCreateDuplicateConflicts(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateService("svc-1", testServiceSpec("web"))
	require.NoError(t, err)

	_, err = st.CreateService("svc-1", testServiceSpec("other"))
	require.Error(t, err)
	assert.True(t, errdefs.IsConflict(err))
}

func TestUpdateIncrementsVersion(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateService("svc-1", testServiceSpec("web"))
	require.NoError(t, err)

	updated := testServiceSpec("web")
	updated.Mode.SetReplicated(5)

	version, err := st.UpdateService("svc-1", updated, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)

	got, gotVersion, err := st.GetService("svc-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), gotVersion)
	assert.Equal(t, uint64(5), got.Mode.Replicated.Replicas)
}

func TestUpdateStaleVersionConflicts(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateService("svc-1", testServiceSpec("web"))
	require.NoError(t, err)

	updated := testServiceSpec("web")
	updated.Mode.SetReplicated(5)
	_, err = st.UpdateService("svc-1", updated, 1)
	require.NoError(t, err)

	// A second writer still holding version 1 must lose.
	stale := testServiceSpec("web")
	stale.Mode.SetReplicated(9)
	_, err = st.UpdateService("svc-1", stale, 1)
	require.Error(t, err)
	assert.True(t, errdefs.IsConflict(err))

	// The stored record is untouched by the failed write.
	got, version, err := st.GetService("svc-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, uint64(5), got.Mode.Replicated.Replicas)
}

func TestInvalidSpecNeverStored(t *testing.T) {
	st := newTestStore(t)

	bad := testServiceSpec("web")
	bad.Mode = types.ServiceMode{}

	_, err := st.CreateService("svc-1", bad)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidSpec(err))

	_, _, err = st.GetService("svc-1")
	assert.True(t, errdefs.IsNotFound(err))
}

func TestGetMissingNotFound(t *testing.T) {
	st := newTestStore(t)

	_, _, err := st.GetService("nope")
	assert.True(t, errdefs.IsNotFound(err))

	err = st.DeleteService("nope")
	assert.True(t, errdefs.IsNotFound(err))
}

func TestGetServiceByName(t *testing.T) {
	st := newTestStore(t)

	_, err := st.CreateService("svc-1", testServiceSpec("web"))
	require.NoError(t, err)
	_, err = st.CreateService("svc-2", testServiceSpec("api"))
	require.NoError(t, err)

	rec, err := st.GetServiceByName("api")
	require.NoError(t, err)
	assert.Equal(t, "svc-2", rec.ID)

	_, err = st.GetServiceByName("ghost")
	assert.True(t, errdefs.IsNotFound(err))
}

func TestUnknownFieldsSurviveStore(t *testing.T) {
	st := newTestStore(t)

	spec := testServiceSpec("web")
	spec.Extra = map[string]json.RawMessage{
		"gpuPolicy": json.RawMessage(`{"vendor":"acme"}`),
	}

	_, err := st.CreateService("svc-1", spec)
	require.NoError(t, err)

	got, _, err := st.GetService("svc-1")
	require.NoError(t, err)
	require.Contains(t, got.Extra, "gpuPolicy")
	assert.JSONEq(t, `{"vendor":"acme"}`, string(got.Extra["gpuPolicy"]))
}

func TestNodeLifecycle(t *testing.T) {
	st := newTestStore(t)

	spec := &types.NodeSpec{
		Annotations:  types.Annotations{Name: "node-1"},
		Role:         types.NodeRoleWorker,
		Availability: types.NodeAvailabilityActive,
	}
	_, err := st.CreateNode("n-1", spec)
	require.NoError(t, err)

	// Draining a previously active node is accepted at this layer.
	drained := &types.NodeSpec{
		Annotations:  types.Annotations{Name: "node-1"},
		Role:         types.NodeRoleWorker,
		Availability: types.NodeAvailabilityDrain,
	}
	version, err := st.UpdateNode("n-1", drained, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)

	got, _, err := st.GetNode("n-1")
	require.NoError(t, err)
	assert.Equal(t, types.NodeAvailabilityDrain, got.Availability)
}

func TestClusterLifecycle(t *testing.T) {
	st := newTestStore(t)

	spec := &types.ClusterSpec{
		Annotations:      types.Annotations{Name: "default"},
		AcceptancePolicy: &types.AcceptancePolicy{},
		Orchestration:    &types.OrchestrationConfig{},
		Raft:             &types.RaftConfig{HeartbeatTick: 1},
		Dispatcher:       &types.DispatcherConfig{},
		CA:               &types.CAConfig{},
	}
	_, err := st.CreateCluster("c-1", spec)
	require.NoError(t, err)

	incomplete := &types.ClusterSpec{Annotations: types.Annotations{Name: "default"}}
	_, err = st.UpdateCluster("c-1", incomplete, 1)
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidSpec(err))
}

func TestNetworkLifecycle(t *testing.T) {
	st := newTestStore(t)

	spec := &types.NetworkSpec{
		Annotations:  types.Annotations{Name: "backend"},
		DriverConfig: &types.Driver{Name: "overlay"},
		Internal:     true,
	}
	_, err := st.CreateNetwork("net-1", spec)
	require.NoError(t, err)

	recs, err := st.ListNetworks()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "backend", recs[0].Spec.Annotations.Name)
	assert.True(t, recs[0].Spec.Internal)
}

func TestStorePublishesEvents(t *testing.T) {
	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	st, err := NewBoltStore(t.TempDir(), broker)
	require.NoError(t, err)
	defer st.Close()

	sub := broker.Subscribe()

	_, err = st.CreateService("svc-1", testServiceSpec("web"))
	require.NoError(t, err)

	event := <-sub
	assert.Equal(t, string(KindService), event.Kind)
	assert.Equal(t, events.ActionCreated, event.Action)
	assert.Equal(t, "svc-1", event.ObjectID)
	assert.Equal(t, uint64(1), event.Version)
	assert.NotEmpty(t, event.ID)
}
