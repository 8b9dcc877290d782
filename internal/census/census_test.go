package census

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drakos74/free-census/internal/storage"
	json_storage "github.com/drakos74/free-census/internal/storage/file/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const data = `39, State-gov, 77516, Never-married, Male
50, Self-emp-not-inc, 83311, Married-civ-spouse, Male

38, Private, 215646, Divorced, Male
53, ?, 234721, Married-civ-spouse, Male
28, Private, 338409, Married-civ-spouse, Female.
`

func setup(t *testing.T) Paths {
	dir := t.TempDir()
	paths := PathsIn(dir)
	require.NoError(t, os.MkdirAll(filepath.Dir(paths.Data), 0755))
	require.NoError(t, os.WriteFile(paths.Names, []byte(names), 0644))
	require.NoError(t, os.WriteFile(paths.Data, []byte(data), 0644))
	return paths
}

func readLines(t *testing.T, path string) []string {
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

func TestPipeline_Extract(t *testing.T) {
	paths := setup(t)
	store := storage.NewMockStorage()

	report, err := NewPipeline(Extract, DefaultConfig(), paths).
		WithStorage(storage.MockShard(store)).
		Run()
	require.NoError(t, err)

	assert.Equal(t, 5, report.Lines)
	assert.Equal(t, 4, report.Accepted)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, 4, report.Retained)

	assert.Equal(t, []string{
		"39, 2, 77516, 1 | 0",
		"50, 1, 83311, 1 | 1",
		"38, 0, 215646, 1 | 2",
		"28, 0, 338409, 0 | 1",
	}, readLines(t, paths.Output))

	_, err = os.Stat(paths.Legend)
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, []string{paths.Output, paths.Metrics}, report.Outputs)
	assert.Equal(t, map[string]int{
		"never-married":      1,
		"married-civ-spouse": 2,
		"divorced":           1,
	}, report.Classes)
	require.Equal(t, 4, len(report.Columns))
	assert.Equal(t, "age", report.Columns[0].Name)
	assert.InDelta(t, 38.75, report.Columns[0].Mean, 1e-9)

	metrics := strings.Join(readLines(t, paths.Metrics), "\n")
	assert.True(t, strings.Contains(metrics, `census_rows_total{outcome="rejected",variant="extract"} 1`), metrics)

	assert.Equal(t, 1, len(store.Elements))
	for k, v := range store.Elements {
		assert.Equal(t, report.ID, k.Run)
		assert.Equal(t, report.ID, v.(Report).ID)
	}
}

func TestPipeline_StoresReport(t *testing.T) {
	paths := setup(t)
	storage.DefaultDir = t.TempDir()

	report, err := NewPipeline(Sample, DefaultConfig(), paths).
		WithSampler(KeepAll{}).
		WithStorage(json_storage.BlobShard(storage.ReportDir)).
		Run()
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(storage.DefaultDir, "census", "sample", report.ID+".json"))
	require.NoError(t, err)

	var stored Report
	require.NoError(t, json.Unmarshal(b, &stored))
	assert.Equal(t, report.ID, stored.ID)
	assert.Equal(t, Sample, stored.Variant)
	assert.Equal(t, 4, stored.Retained)
}

func TestPipeline_Sample(t *testing.T) {

	type test struct {
		draw Draw
		rows int
	}

	tests := map[string]test{
		"all": {
			draw: func() int { return 0 },
			rows: 4,
		},
		"none": {
			draw: func() int { return maxDraw },
			rows: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			paths := setup(t)

			report, err := NewPipeline(Sample, DefaultConfig(), paths).
				WithSampler(NewSampler(tt.draw, DefaultRetention)).
				Run()
			require.NoError(t, err)

			assert.Equal(t, 4, report.Accepted)
			assert.Equal(t, tt.rows, report.Retained)

			b, err := os.ReadFile(paths.Output)
			require.NoError(t, err)
			assert.Equal(t, tt.rows, bytes.Count(b, []byte("\n")))

			assert.Equal(t, []string{
				"continuous",
				"private, self-emp-not-inc, state-gov",
				"continuous",
				"female, male",
				"never-married, married-civ-spouse, divorced",
			}, readLines(t, paths.Legend))
		})
	}
}

func TestPipeline_SamplePairsTargets(t *testing.T) {
	paths := setup(t)

	i := 0
	draws := []int{100, 0, 100, 0}
	report, err := NewPipeline(Sample, DefaultConfig(), paths).
		WithSampler(NewSampler(func() int {
			d := draws[i]
			i++
			return d
		}, DefaultRetention)).
		Run()
	require.NoError(t, err)
	assert.Equal(t, 2, report.Retained)

	// every retained row keeps its own target
	assert.Equal(t, []string{
		"50, 1, 83311, 1 | 1",
		"28, 0, 338409, 0 | 1",
	}, readLines(t, paths.Output))
}

func TestPipeline_Instances(t *testing.T) {

	type test struct {
		variant Variant
		draw    Draw
		lines   int
	}

	tests := map[string]test{
		"extract": {
			variant: Extract,
			draw:    func() int { return 0 },
			lines:   5,
		},
		"sample-none": {
			variant: Sample,
			draw:    func() int { return maxDraw },
			lines:   1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			paths := setup(t)
			cfg := DefaultConfig()
			cfg.Instances = true

			// a rerun replaces the previous export
			for i := 0; i < 2; i++ {
				report, err := NewPipeline(tt.variant, cfg, paths).
					WithSampler(NewSampler(tt.draw, DefaultRetention)).
					Run()
				require.NoError(t, err)
				assert.Contains(t, report.Outputs, paths.Instances)
			}

			assert.Equal(t, tt.lines, len(readLines(t, paths.Instances)))
		})
	}
}

func TestPipeline_Errors(t *testing.T) {

	type test struct {
		prepare func(paths Paths)
		err     error
	}

	tests := map[string]test{
		"missing-data": {
			prepare: func(paths Paths) {
				_ = os.Remove(paths.Data)
			},
			err: os.ErrNotExist,
		},
		"missing-names": {
			prepare: func(paths Paths) {
				_ = os.Remove(paths.Names)
			},
			err: os.ErrNotExist,
		},
		"malformed-number": {
			prepare: func(paths Paths) {
				_ = os.WriteFile(paths.Data, []byte("thirty, private, 1, divorced, male\n"), 0644)
			},
			err: InvalidNumberErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			paths := setup(t)
			tt.prepare(paths)
			_, err := NewPipeline(Extract, DefaultConfig(), paths).Run()
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestReport_Render(t *testing.T) {
	paths := setup(t)
	report, err := NewPipeline(Extract, DefaultConfig(), paths).Run()
	require.NoError(t, err)

	var buf bytes.Buffer
	report.Render(&buf)
	out := buf.String()
	assert.True(t, strings.Contains(out, "extract"), out)
	assert.True(t, strings.Contains(out, "fnlwgt"), out)
	assert.True(t, strings.Contains(out, "married-civ-spouse"), out)
}
