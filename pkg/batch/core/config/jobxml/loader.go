package jobxml

import (
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	exception "github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

const loaderModule = "jobxml"

// LoadJobDefinitionFromBytes decodes and structurally validates one job
// definition file. Environment variable placeholders (${VAR}) in the raw
// bytes are expanded first when an expander is supplied; a nil expander skips
// expansion. A file either decodes and validates completely or fails as a
// unit with a BatchError naming the offending element.
func LoadJobDefinitionFromBytes(data []byte, expander config.EnvironmentExpander) (*JobSpec, error) {
	if expander != nil {
		expanded, err := expander.Expand(data)
		if err != nil {
			return nil, exception.NewBatchError(loaderModule, "failed to expand environment variables in job definition", err)
		}
		data = expanded
	}

	var job JobSpec
	if err := xml.Unmarshal(data, &job); err != nil {
		return nil, exception.NewBatchError(loaderModule, "failed to parse job definition XML", err)
	}

	if err := validateJobSpec(&job); err != nil {
		return nil, err
	}

	logger.Debugf("Loaded job definition '%s' with %d step(s).", job.ID, len(job.Steps))
	return &job, nil
}

// LoadJobDefinitionFromFile reads one *.xml file and loads it through
// LoadJobDefinitionFromBytes.
func LoadJobDefinitionFromFile(path string, expander config.EnvironmentExpander) (*JobSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, exception.NewBatchErrorf(loaderModule, "failed to read job definition file '%s'", path, err)
	}
	job, err := LoadJobDefinitionFromBytes(data, expander)
	if err != nil {
		return nil, exception.NewBatchErrorf(loaderModule, "job definition file '%s' is invalid", path, err)
	}
	return job, nil
}

// LoadJobDefinitionsFromDir loads every *.xml file directly under dir, in
// lexical path order. Each file is loaded fail-fast on its own; failures
// across files are collected and returned together, alongside the jobs that
// did load.
func LoadJobDefinitionsFromDir(dir string, expander config.EnvironmentExpander) ([]*JobSpec, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, exception.NewBatchErrorf(loaderModule, "failed to list job definitions under '%s'", dir, err)
	}
	if len(paths) == 0 {
		logger.Warnf("No job definition files (*.xml) found under '%s'.", dir)
		return nil, nil
	}

	var loadErrs *multierror.Error
	jobs := make([]*JobSpec, 0, len(paths))
	for _, path := range paths {
		job, err := LoadJobDefinitionFromFile(path, expander)
		if err != nil {
			loadErrs = multierror.Append(loadErrs, err)
			continue
		}
		jobs = append(jobs, job)
	}

	logger.Infof("Loaded %d of %d job definition file(s) under '%s'.", len(jobs), len(paths), dir)
	return jobs, loadErrs.ErrorOrNil()
}

// validateJobSpec enforces the structural rules that hold before any step is
// resolved: the job carries an id, declares at least one step, and no two
// steps share a declared name. Unnamed steps are allowed here; the resolver
// synthesizes their names from document position.
func validateJobSpec(job *JobSpec) error {
	if job.ID == "" {
		return exception.NewBatchError(loaderModule, "'id' attribute is not defined on the job element", nil)
	}
	if len(job.Steps) == 0 {
		return exception.NewBatchErrorf(loaderModule, "job '%s' does not declare any step", job.ID)
	}

	seen := make(map[string]struct{}, len(job.Steps))
	for _, step := range job.Steps {
		if step.Name == "" {
			continue
		}
		if _, dup := seen[step.Name]; dup {
			return exception.NewBatchErrorf(loaderModule, "job '%s' declares step name '%s' more than once", job.ID, step.Name)
		}
		seen[step.Name] = struct{}{}
	}
	return nil
}
