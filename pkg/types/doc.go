/*
Package types defines the declarative object model of Drove: the
specification layer consumed by the control plane.

Every object kind (cluster, node, service, task, network) separates user
intent — the Spec types in this package — from system-derived state owned by
the reconciliation engine. A Spec is copied verbatim from the client at
submission time, validated once, stored immutably, and only ever replaced
wholesale; no field is derived or rewritten by the system afterwards. That
guarantee is what lets the reconciler diff "what the user asked for" against
"what the system decided".

# Structure

  - Annotations: name and labels, present on every top-level spec
  - NodeSpec: role, membership (admission), availability
  - ServiceSpec: embedded TaskSpec, replication mode, update policy,
    network attachments, endpoint configuration
  - TaskSpec: runtime variant, resources, restart policy, placement
  - ContainerSpec: image, command/args/env, mounts, stop grace period
  - NetworkSpec: driver config, IPv6/internal flags, IPAM options
  - ClusterSpec: acceptance policy, orchestration, raft, dispatcher and
    CA configuration (all five mandatory)

Mutually exclusive configuration choices (ServiceSpec.Mode,
TaskSpec.Runtime) are tagged unions: setters clear sibling variants, Kind
accessors report the selected variant, and Validate rejects zero or multiple
populated variants.

# Invariants

Validate methods aggregate every violation into one error (see pkg/errdefs)
so clients fix all problems in a single round trip. Equality is structural
and order-insensitive for maps. Unknown JSON fields are preserved opaquely
across round trips for forward compatibility during rolling upgrades.

Instances are plain values: immutable after validation, safe for concurrent
readers without synchronization.
*/
package types
