package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/af-prep/internal/logger"
	"github.com/jonathan/af-prep/internal/schemas"
	"github.com/jonathan/af-prep/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var validateJobsCmd = &cobra.Command{
	Use:   "validate-jobs",
	Short: "Validate job descriptors against the job descriptor schema",
	Long:  "Checks every *.json file in a directory against the embedded job descriptor schema, or the one given with --schema, and fails if any does not conform.",
	RunE:  runValidateJobs,
}

var (
	validateJobsDir    string
	validateJobsSchema string
)

func init() {
	validateJobsCmd.Flags().StringVarP(&validateJobsDir, "dir", "d", "", "Directory of job descriptors (required)")
	validateJobsCmd.Flags().StringVar(&validateJobsSchema, "schema", "", "Path to a JSON Schema file to use instead of the embedded one")

	if err := validateJobsCmd.MarkFlagRequired("dir"); err != nil {
		panic(fmt.Sprintf("failed to mark dir flag as required: %v", err))
	}

	rootCmd.AddCommand(validateJobsCmd)
}

func runValidateJobs(cmd *cobra.Command, _ []string) error {
	paths, err := filepath.Glob(filepath.Join(validateJobsDir, "*"+types.DescriptorFileExt))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", validateJobsDir, err)
	}
	if len(paths) == 0 {
		if _, err := os.Stat(validateJobsDir); err != nil {
			return fmt.Errorf("failed to read %s: %w", validateJobsDir, err)
		}
	}
	sort.Strings(paths)

	validator, err := loadValidator(validateJobsSchema)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	invalid := 0
	for _, path := range paths {
		if err := validator.ValidateFile(path); err != nil {
			invalid++
			logger.Error("Invalid job descriptor", zap.String("path", path), zap.Error(err))
			_, _ = fmt.Fprintf(out, "INVALID %s: %v\n", filepath.Base(path), err)
		}
	}

	_, _ = fmt.Fprintf(out, "Checked %d descriptors, %d invalid\n", len(paths), invalid)
	if invalid > 0 {
		return fmt.Errorf("%d of %d job descriptors failed validation", invalid, len(paths))
	}
	return nil
}

func loadValidator(schemaPath string) (*schemas.Validator, error) {
	if schemaPath == "" {
		return schemas.JobDescriptorValidator()
	}
	return schemas.LoadSchemaFile(schemaPath)
}
