package report

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Summary is the machine-readable record of one migration run.
type Summary struct {
	Database          string  `yaml:"database"`
	PhotoDir          string  `yaml:"photodir"`
	DryRun            bool    `yaml:"dryrun"`
	Timestamp         string  `yaml:"timestamp"`
	MetadataRecords   int     `yaml:"metadatarecords"`
	DuplicateRecords  int     `yaml:"duplicaterecords"`
	FilesScanned      int     `yaml:"filesscanned"`
	DuplicateFiles    int     `yaml:"duplicatefiles"`
	Matched           int     `yaml:"matched"`
	UnmatchedMetadata int     `yaml:"unmatchedmetadata"`
	Processed         int     `yaml:"processed"`
	Skipped           int     `yaml:"skipped"`
	Errors            int     `yaml:"errors"`
	RuntimeSeconds    float64 `yaml:"runtimeseconds"`
}

// WriteSummary saves the run summary as YAML.
func WriteSummary(path string, s Summary) error {
	if s.Timestamp == "" {
		s.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}
