package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/drovehq/drove/pkg/store"
)

var getCmd = &cobra.Command{
	Use:   "get <clusters|nodes|services|networks> [id]",
	Short: "Show stored specs",
	Long: `Show stored specs of one kind, or a single spec as JSON.

Examples:
  # List all services
  drove get services

  # Print one service spec
  drove get services 6b1a…`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")

	st, err := store.NewBoltStore(dataDir, nil)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if len(args) == 2 {
		return printOne(st, args[0], args[1])
	}
	return printList(st, args[0])
}

func printOne(st store.Store, kind, id string) error {
	var spec any
	var version uint64
	var err error

	switch kind {
	case "clusters", "cluster":
		spec, version, err = st.GetCluster(id)
	case "nodes", "node":
		spec, version, err = st.GetNode(id)
	case "services", "service":
		spec, version, err = st.GetService(id)
	case "networks", "network":
		spec, version, err = st.GetNetwork(id)
	default:
		return fmt.Errorf("unsupported kind: %s", kind)
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("# version %d\n%s\n", version, data)
	return nil
}

func printList(st store.Store, kind string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tNAME\tVERSION")

	switch kind {
	case "clusters", "cluster":
		recs, err := st.ListClusters()
		if err != nil {
			return err
		}
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%d\n", r.ID, r.Spec.Annotations.Name, r.Version)
		}
	case "nodes", "node":
		recs, err := st.ListNodes()
		if err != nil {
			return err
		}
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%d\n", r.ID, r.Spec.Annotations.Name, r.Version)
		}
	case "services", "service":
		recs, err := st.ListServices()
		if err != nil {
			return err
		}
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%d\n", r.ID, r.Spec.Annotations.Name, r.Version)
		}
	case "networks", "network":
		recs, err := st.ListNetworks()
		if err != nil {
			return err
		}
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%d\n", r.ID, r.Spec.Annotations.Name, r.Version)
		}
	default:
		return fmt.Errorf("unsupported kind: %s", kind)
	}
	return nil
}
