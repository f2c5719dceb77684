package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drovehq/drove/pkg/errdefs"
	"github.com/drovehq/drove/pkg/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate spec manifests without storing them",
	Long: `Validate one or more spec manifests from a YAML file.

Every violation is reported, not just the first, so all problems can be
fixed in one pass.

Examples:
  # Validate a service definition
  drove validate -f service.yaml`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringP("file", "f", "", "YAML file to validate (required)")
	_ = validateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	objs, err := manifest.DecodeAll(data)
	if err != nil {
		var ve *errdefs.ValidationError
		if errors.As(err, &ve) {
			for _, v := range ve.Violations {
				fmt.Printf("✗ %s\n", v)
			}
			return fmt.Errorf("%d violation(s) found", len(ve.Violations))
		}
		return err
	}

	for _, obj := range objs {
		fmt.Printf("✓ %s %q is valid\n", obj.Kind, obj.Name)
	}
	return nil
}
