package census

import (
	"fmt"
	"path/filepath"
	"time"

	coinmath "github.com/drakos74/free-census/internal/math"
	"github.com/drakos74/free-census/internal/math/ml"
	"github.com/drakos74/free-census/internal/metrics"
	"github.com/drakos74/free-census/internal/model"
	"github.com/drakos74/free-census/internal/storage"
	"github.com/drakos74/free-census/internal/storage/file"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Variant names the flavour of the conversion.
type Variant string

const (
	// Extract converts every accepted row.
	Extract Variant = "extract"
	// Sample converts a random subset of the accepted rows and writes the legend.
	Sample Variant = "sample"
)

const (
	// DefaultTarget is the feature used as the label.
	DefaultTarget = "marital-status"

	dataDir = "adult"
)

// Config holds the tunable parameters of a conversion.
type Config struct {
	Target    string `json:"target"`
	Missing   string `json:"missing"`
	Retention int    `json:"retention"`
	Seed      int64  `json:"seed"`
	LogLevel  string `json:"log_level"`
	Instances bool   `json:"instances"`
}

// DefaultConfig returns the config used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		Target:    DefaultTarget,
		Missing:   DefaultMissing,
		Retention: DefaultRetention,
		LogLevel:  zerolog.InfoLevel.String(),
	}
}

// Paths are the input and output files of a conversion.
type Paths struct {
	Data      string
	Names     string
	Output    string
	Legend    string
	Metrics   string
	Instances string
}

// DefaultPaths returns the fixed file locations relative to the working directory.
func DefaultPaths() Paths {
	return PathsIn(".")
}

// PathsIn returns the fixed file layout rooted at the given directory.
func PathsIn(dir string) Paths {
	return Paths{
		Data:      filepath.Join(dir, dataDir, "adult.data"),
		Names:     filepath.Join(dir, dataDir, "adult.names"),
		Output:    filepath.Join(dir, "census.td"),
		Legend:    filepath.Join(dir, "census.cl"),
		Metrics:   filepath.Join(dir, "census.prom"),
		Instances: filepath.Join(dir, "census.csv"),
	}
}

// Pipeline converts the census data files into the encoded dataset.
type Pipeline struct {
	variant Variant
	cfg     Config
	paths   Paths
	sampler Sampler
	store   storage.Persistence
}

// NewPipeline creates a new pipeline for the given variant.
func NewPipeline(variant Variant, cfg Config, paths Paths) *Pipeline {
	var sampler Sampler = KeepAll{}
	if variant == Sample {
		sampler = NewRandomSampler(cfg.Seed, cfg.Retention)
	}
	return &Pipeline{
		variant: variant,
		cfg:     cfg,
		paths:   paths,
		sampler: sampler,
		store:   storage.NewVoidStorage(),
	}
}

// WithSampler replaces the sampler of the pipeline.
func (p *Pipeline) WithSampler(sampler Sampler) *Pipeline {
	p.sampler = sampler
	return p
}

// WithStorage sets the storage for the run report.
func (p *Pipeline) WithStorage(shard storage.Shard) *Pipeline {
	persistence, err := shard(string(p.variant))
	if err != nil {
		log.Error().Err(err).Str("variant", string(p.variant)).Msg("could not create report storage")
		persistence = storage.NewVoidStorage()
	}
	p.store = persistence
	return p
}

// Run executes the conversion.
// On error the output files may be partially written and must not be used.
func (p *Pipeline) Run() (Report, error) {
	start := time.Now()
	report := Report{
		ID:      uuid.New().String(),
		Variant: p.variant,
		Target:  p.cfg.Target,
		Outputs: make([]string, 0),
	}
	logger := log.With().Str("run", report.ID).Str("variant", string(p.variant)).Logger()
	m := metrics.New(string(p.variant))

	meta, err := LoadMetadata(p.paths.Names, p.cfg.Target)
	if err != nil {
		return report, err
	}
	logger.Info().
		Int("features", len(meta.FeatureOrder())).
		Int("classes", len(meta.Target().Categories)).
		Msg("loaded metadata")

	lines, numbers, err := file.Lines(p.paths.Data)
	if err != nil {
		return report, err
	}

	out, err := file.CreateRowWriter(p.paths.Output)
	if err != nil {
		return report, err
	}
	rows, err := p.convert(NewDecoder(meta, p.cfg.Missing), lines, numbers, out, m, &report, logger)
	if err != nil {
		_ = out.Close()
		return report, err
	}
	if err := out.Close(); err != nil {
		return report, fmt.Errorf("could not close '%s': %w", p.paths.Output, err)
	}
	report.Outputs = append(report.Outputs, p.paths.Output)

	if p.variant == Sample {
		if err := file.SaveLegend(p.paths.Legend, meta.Features(), meta.Target()); err != nil {
			return report, err
		}
		report.Outputs = append(report.Outputs, p.paths.Legend)
	}

	names := columnNames(meta, rows)
	columns, err := coinmath.Columns(names, vectors(rows))
	if err != nil {
		logger.Warn().Err(err).Msg("could not compute column statistics")
	}
	report.Columns = columns
	report.Classes = classes(meta.Target(), rows)

	if p.cfg.Instances {
		inst, err := ml.Instances(names, meta.Target(), rows)
		if err != nil {
			return report, err
		}
		if err := ml.Export(p.paths.Instances, inst); err != nil {
			return report, err
		}
		report.Outputs = append(report.Outputs, p.paths.Instances)
	}

	if err := m.WriteTo(p.paths.Metrics); err != nil {
		return report, err
	}
	report.Outputs = append(report.Outputs, p.paths.Metrics)
	report.Elapsed = time.Since(start)

	if err := p.store.Store(storage.Key{Run: report.ID}, report); err != nil {
		logger.Error().Err(err).Msg("could not store report")
	}

	logger.Info().
		Int("lines", report.Lines).
		Int("accepted", report.Accepted).
		Int("rejected", report.Rejected).
		Int("retained", report.Retained).
		Dur("elapsed", report.Elapsed).
		Msg("converted census data")
	return report, nil
}

func (p *Pipeline) convert(decoder *Decoder, lines []string, numbers []int, out *file.RowWriter, m *metrics.Metrics, report *Report, logger zerolog.Logger) ([]model.Encoded, error) {
	rows := make([]model.Encoded, 0)
	for i, line := range lines {
		report.Lines++
		row, ok, err := decoder.DecodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", numbers[i], err)
		}
		if !ok {
			report.Rejected++
			m.Increment(model.Rejected)
			logger.Debug().Int("line", numbers[i]).Msg("skipping row with missing value")
			continue
		}
		report.Accepted++
		m.Increment(model.Accepted)

		if !p.sampler.Keep() {
			continue
		}
		if err := out.Write(row); err != nil {
			return nil, err
		}
		report.Retained++
		m.Increment(model.Retained)
		rows = append(rows, row)
	}
	return rows, nil
}

// columnNames names the encoded columns after the features.
// Rows that do not follow the metadata layout get positional names.
func columnNames(meta *Metadata, rows []model.Encoded) []string {
	order := meta.FeatureOrder()
	if len(rows) == 0 || len(rows[0].Features) == len(order) {
		return order
	}
	names := make([]string, len(rows[0].Features))
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	return names
}

func vectors(rows []model.Encoded) [][]float64 {
	vv := make([][]float64, len(rows))
	for i, r := range rows {
		vv[i] = r.Features
	}
	return vv
}

func classes(target model.Feature, rows []model.Encoded) map[string]int {
	tt := make([]int, len(rows))
	for i, r := range rows {
		tt[i] = r.Target
	}
	counts := coinmath.Classes(tt, len(target.Categories))
	cc := make(map[string]int, len(counts))
	for i, c := range counts {
		cc[target.Categories[i]] = c
	}
	return cc
}
