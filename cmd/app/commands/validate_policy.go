package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sundacoder/ZedID/internal/policy/domain"
)

// validatePolicyActor is recorded as the author of documents validated offline.
const validatePolicyActor = "zedid-cli"

// policyDocument is the on-disk form of a policy. JSON documents are accepted
// too since YAML is a superset of JSON.
type policyDocument struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Kind        domain.Kind        `yaml:"kind"`
	AccessModel domain.AccessModel `yaml:"access_model"`
	Content     string             `yaml:"content"`
	Explanation string             `yaml:"explanation"`
	Namespace   string             `yaml:"namespace"`
	Subjects    []string           `yaml:"subjects"`
	Resources   []string           `yaml:"resources"`
	Actions     []string           `yaml:"actions"`
	Tags        []string           `yaml:"tags"`
}

// RunValidatePolicy validates a policy document read from reader without a
// running server, applying the same rules as the policy API. Returns an error
// when the document cannot be parsed or fails validation.
func RunValidatePolicy(
	ctx context.Context,
	logger *slog.Logger,
	reader io.Reader,
	writer io.Writer,
	source string,
	format string,
) error {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var doc policyDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("policy document %s is empty", source)
		}
		return fmt.Errorf("failed to parse policy document %s: %w", source, err)
	}

	if err := doc.Kind.Validate(); err != nil {
		return fmt.Errorf("invalid policy document: %w", err)
	}
	if err := doc.AccessModel.Validate(); err != nil {
		return fmt.Errorf("invalid policy document: %w", err)
	}

	policy := domain.NewDraftPolicy(domain.CreatePolicyInput{
		Name:        doc.Name,
		Description: doc.Description,
		Kind:        doc.Kind,
		AccessModel: doc.AccessModel,
		Content:     doc.Content,
		Explanation: doc.Explanation,
		Namespace:   doc.Namespace,
		Subjects:    doc.Subjects,
		Resources:   doc.Resources,
		Actions:     doc.Actions,
		Tags:        doc.Tags,
	}, validatePolicyActor, time.Now().UTC())

	result := domain.Validate(policy)

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"source":            source,
			"name":              policy.Name,
			"kind":              policy.Kind,
			"validation_result": result,
		}); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputValidationText(writer, source, policy, result)
	}

	logger.InfoContext(ctx, "policy validated",
		slog.String("source", source),
		slog.String("kind", string(policy.Kind)),
		slog.Bool("passed", result.Passed),
		slog.Int("errors", len(result.Errors)),
		slog.Int("warnings", len(result.Warnings)),
	)

	if !result.Passed {
		return fmt.Errorf("policy validation failed: %d error(s)", len(result.Errors))
	}
	return nil
}

// outputValidationText writes the validation result in human-readable form.
func outputValidationText(writer io.Writer, source string, policy *domain.Policy, result domain.ValidationResult) {
	_, _ = fmt.Fprintf(writer, "Policy Validation\n")
	_, _ = fmt.Fprintf(writer, "=================\n\n")
	_, _ = fmt.Fprintf(writer, "Source:    %s\n", source)
	_, _ = fmt.Fprintf(writer, "Name:      %s\n", policy.Name)
	_, _ = fmt.Fprintf(writer, "Kind:      %s\n", policy.Kind.DisplayName())
	_, _ = fmt.Fprintf(writer, "Coverage:  %.1f\n\n", result.CoverageScore)

	for _, msg := range result.Errors {
		_, _ = fmt.Fprintf(writer, "ERROR:   %s\n", msg)
	}
	for _, msg := range result.Warnings {
		_, _ = fmt.Fprintf(writer, "WARNING: %s\n", msg)
	}
	if len(result.Errors)+len(result.Warnings) > 0 {
		_, _ = fmt.Fprintln(writer)
	}

	if result.Passed {
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
	} else {
		_, _ = fmt.Fprintf(writer, "Status: FAILED\n")
	}
}
