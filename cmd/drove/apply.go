package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/drovehq/drove/pkg/errdefs"
	"github.com/drovehq/drove/pkg/manifest"
	"github.com/drovehq/drove/pkg/store"
	"github.com/drovehq/drove/pkg/types"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply spec manifests to the local store",
	Long: `Apply spec manifests from a YAML file.

Existing objects (matched by name) are replaced wholesale at their current
version; new objects are created with a generated ID.

Examples:
  # Apply a service definition
  drove apply -f service.yaml

  # Apply multiple resources from one file
  drove apply -f stack.yaml`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("file", "f", "", "YAML file to apply (required)")
	_ = applyCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	objs, err := manifest.DecodeAll(data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	st, err := store.NewBoltStore(dataDir, nil)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	for _, obj := range objs {
		if err := applyObject(st, obj); err != nil {
			return err
		}
	}
	return nil
}

func applyObject(st store.Store, obj *manifest.Object) error {
	switch spec := obj.Spec.(type) {
	case *types.ClusterSpec:
		return applySpec(obj,
			func() (string, uint64, error) {
				rec, err := st.GetClusterByName(obj.Name)
				if err != nil {
					return "", 0, err
				}
				return rec.ID, rec.Version, nil
			},
			func(id string) (uint64, error) { return st.CreateCluster(id, spec) },
			func(id string, version uint64) (uint64, error) { return st.UpdateCluster(id, spec, version) },
		)
	case *types.NodeSpec:
		return applySpec(obj,
			func() (string, uint64, error) {
				rec, err := st.GetNodeByName(obj.Name)
				if err != nil {
					return "", 0, err
				}
				return rec.ID, rec.Version, nil
			},
			func(id string) (uint64, error) { return st.CreateNode(id, spec) },
			func(id string, version uint64) (uint64, error) { return st.UpdateNode(id, spec, version) },
		)
	case *types.ServiceSpec:
		return applySpec(obj,
			func() (string, uint64, error) {
				rec, err := st.GetServiceByName(obj.Name)
				if err != nil {
					return "", 0, err
				}
				return rec.ID, rec.Version, nil
			},
			func(id string) (uint64, error) { return st.CreateService(id, spec) },
			func(id string, version uint64) (uint64, error) { return st.UpdateService(id, spec, version) },
		)
	case *types.NetworkSpec:
		return applySpec(obj,
			func() (string, uint64, error) {
				rec, err := st.GetNetworkByName(obj.Name)
				if err != nil {
					return "", 0, err
				}
				return rec.ID, rec.Version, nil
			},
			func(id string) (uint64, error) { return st.CreateNetwork(id, spec) },
			func(id string, version uint64) (uint64, error) { return st.UpdateNetwork(id, spec, version) },
		)
	default:
		return fmt.Errorf("unsupported object kind: %s", obj.Kind)
	}
}

// applySpec creates the object when the name is unknown, otherwise replaces
// it at its current version.
func applySpec(obj *manifest.Object,
	lookup func() (string, uint64, error),
	create func(id string) (uint64, error),
	update func(id string, version uint64) (uint64, error),
) error {
	id, version, err := lookup()
	switch {
	case errdefs.IsNotFound(err):
		id = uuid.New().String()
		v, err := create(id)
		if err != nil {
			return fmt.Errorf("failed to create %s %q: %w", obj.Kind, obj.Name, err)
		}
		fmt.Printf("✓ %s created: %s (ID: %s, version %d)\n", obj.Kind, obj.Name, id, v)
	case err != nil:
		return err
	default:
		v, err := update(id, version)
		if err != nil {
			return fmt.Errorf("failed to update %s %q: %w", obj.Kind, obj.Name, err)
		}
		fmt.Printf("✓ %s updated: %s (version %d)\n", obj.Kind, obj.Name, v)
	}
	return nil
}
