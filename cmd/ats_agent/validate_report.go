package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/ats-scorer/internal/schemas"
	"github.com/spf13/cobra"
)

var validateReportCmd = &cobra.Command{
	Use:   "validate-report",
	Short: "Validate a report JSON file against the report schema",
	Long:  "Validates a FinalReport JSON file against the embedded report schema, or against a schema file given with --schema.",
	RunE:  runValidateReport,
}

var (
	validateReportInput  string
	validateReportSchema string
)

func init() {
	validateReportCmd.Flags().StringVarP(&validateReportInput, "file", "f", "", "Path to report JSON file (required)")
	validateReportCmd.Flags().StringVarP(&validateReportSchema, "schema", "s", "", "Path to a JSON schema overriding the embedded one")

	if err := validateReportCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(validateReportCmd)
}

func runValidateReport(cmd *cobra.Command, _ []string) error {
	if err := validateReport(validateReportInput, validateReportSchema); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("%s: %w", validateReportInput, err)
		}
		return fmt.Errorf("failed to validate report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", validateReportInput)
	return nil
}

func validateReport(reportPath, schemaPath string) error {
	if schemaPath == "" {
		return schemas.ValidateReportFile(reportPath)
	}

	resolved := schemas.ResolveSchemaPath(schemaPath)
	if resolved == "" {
		return fmt.Errorf("schema file not found: %s", schemaPath)
	}
	return schemas.ValidateJSON(resolved, reportPath)
}
