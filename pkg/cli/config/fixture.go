package config

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Fixture holds the path of a YAML seed file loaded into the repository at startup
type Fixture struct {
	Path string
}

// FixtureData is the document layout of a seed file. Records are stored in
// dependency order, so a test case may reference a suite defined in the same file.
type FixtureData struct {
	Projects   []*model.Project       `yaml:"projects"`
	TestSuites []*model.TestSuite     `yaml:"test_suites"`
	TestCases  []*model.TestCase      `yaml:"test_cases"`
	Executions []*model.TestExecution `yaml:"executions"`
	Defects    []*model.Defect        `yaml:"defects"`
}

// Flags returns CLI flags for Fixture configuration
func (f *Fixture) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "fixture",
			Usage:       "YAML file with projects, suites, test cases, executions and defects to seed",
			Category:    "Database",
			Sources:     cli.EnvVars("TESSERA_FIXTURE"),
			Destination: &f.Path,
		},
	}
}

// Load seeds the repository from the fixture file. It does nothing when no path is set.
func (f *Fixture) Load(ctx context.Context, repo interfaces.Repository) error {
	if f.Path == "" {
		return nil
	}

	fd, err := os.Open(f.Path)
	if err != nil {
		return goerr.Wrap(err, "failed to open fixture file", goerr.V("path", f.Path))
	}
	defer fd.Close()

	data, err := ParseFixture(fd)
	if err != nil {
		return goerr.Wrap(err, "failed to parse fixture file", goerr.V("path", f.Path))
	}

	if err := data.Apply(ctx, repo); err != nil {
		return goerr.Wrap(err, "failed to load fixture", goerr.V("path", f.Path))
	}

	ctxlog.From(ctx).Info("Fixture loaded",
		slog.String("path", f.Path),
		slog.Int("projects", len(data.Projects)),
		slog.Int("test_cases", len(data.TestCases)),
		slog.Int("executions", len(data.Executions)),
		slog.Int("defects", len(data.Defects)),
	)
	return nil
}

// ParseFixture decodes a seed document. Unknown keys are rejected.
func ParseFixture(r io.Reader) (*FixtureData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data FixtureData
	if err := dec.Decode(&data); err != nil {
		if err == io.EOF {
			return &data, nil
		}
		return nil, goerr.Wrap(err, "failed to decode fixture")
	}
	return &data, nil
}

// Apply stores every record of the document into the repository
func (d *FixtureData) Apply(ctx context.Context, repo interfaces.Repository) error {
	for _, p := range d.Projects {
		if err := repo.PutProject(ctx, p); err != nil {
			return goerr.Wrap(err, "failed to put project", goerr.V("id", p.ID))
		}
	}
	for _, s := range d.TestSuites {
		if err := repo.PutTestSuite(ctx, s); err != nil {
			return goerr.Wrap(err, "failed to put test suite", goerr.V("id", s.ID))
		}
	}
	for _, tc := range d.TestCases {
		if err := repo.PutTestCase(ctx, tc); err != nil {
			return goerr.Wrap(err, "failed to put test case", goerr.V("id", tc.ID))
		}
	}
	for _, e := range d.Executions {
		if err := repo.PutExecution(ctx, e); err != nil {
			return goerr.Wrap(err, "failed to put execution", goerr.V("id", e.ID))
		}
	}
	for _, def := range d.Defects {
		if err := repo.PutDefect(ctx, def); err != nil {
			return goerr.Wrap(err, "failed to put defect", goerr.V("id", def.ID))
		}
	}
	return nil
}

// LogValue returns structured log value
func (f Fixture) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", f.Path))
}
