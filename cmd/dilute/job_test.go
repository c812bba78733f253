// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-calibrate/calib"
)

// identityModelDef reads out the quantity directly with unit noise:
// y ~ Normal(x, 1).
func identityModelDef() calib.ModelDef {
	return calib.ModelDef{
		Family: "normal",
		Mu:     calib.CurveDef{Kind: "polynomial", Params: []float64{0, 1}},
		Sigma:  calib.CurveDef{Kind: "polynomial", Params: []float64{1}},
	}
}

func writeModelFile(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, calib.WriteModelDef(f, identityModelDef()))
}

const inlineJobYAML = `model:
  family: normal
  mu:
    kind: polynomial
    params: [0, 1]
  sigma:
    kind: polynomial
    params: [1]
dilutions: [1, 2]
observations: [4.2, 2.0]
lower: 0
upper: 10
steps: 50
ci_prob: 0.9
`

func TestLoadJobInlineModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(path, []byte(inlineJobYAML), 0o644))

	j, err := loadJob(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", j.name)
	assert.Equal(t, []float64{1, 2}, j.d)
	assert.Equal(t, []float64{4.2, 2.0}, j.y)
	assert.Equal(t, 0.0, j.lower)
	assert.Equal(t, 10.0, j.upper)
	assert.Equal(t, 50, j.steps)
	assert.Equal(t, 0.9, j.ciProb)

	// The most likely quantity solves (4.2-x) + (2-x/2)/2 = 0.
	res, err := j.run()
	require.NoError(t, err)
	assert.InDelta(t, 4.16, res.Median, 0.01)
	assert.Len(t, res.ETI.Xs, 50)
}

func TestLoadJobModelFile(t *testing.T) {
	dir := t.TempDir()
	writeModelFile(t, filepath.Join(dir, "model.json"))
	jobPath := filepath.Join(dir, "undiluted.yaml")
	require.NoError(t, os.WriteFile(jobPath, []byte(
		"model_file: model.json\nobservations: [4, 6]\nlower: 0\nupper: 10\n"), 0o644))

	// model_file resolves relative to the job file, not the
	// working directory.
	j, err := loadJob(jobPath)
	require.NoError(t, err)
	assert.Equal(t, "undiluted", j.name)
	assert.Nil(t, j.d)

	res, err := j.run()
	require.NoError(t, err)
	assert.InDelta(t, 5, res.Median, 0.01)
}

func TestLoadJobAbsoluteModelFile(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "model.json")
	writeModelFile(t, modelPath)
	jobPath := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(jobPath, []byte(
		"model_file: "+modelPath+"\nobservations: [5]\nlower: 0\nupper: 10\n"), 0o644))

	_, err := loadJob(jobPath)
	require.NoError(t, err)
}

func TestMapJobErrors(t *testing.T) {
	def := identityModelDef()
	tests := []struct {
		name    string
		file    jobFile
		wantErr string
	}{
		{"NoModel", jobFile{Observations: []float64{1}, Upper: 1}, "needs a model"},
		{
			"BothModels",
			jobFile{Model: &def, ModelFile: "m.json", Observations: []float64{1}, Upper: 1},
			"mutually exclusive",
		},
		{
			"BadModel",
			jobFile{Model: &calib.ModelDef{Family: "laplace"}, Observations: []float64{1}, Upper: 1},
			"model:",
		},
		{"NoObservations", jobFile{Model: &def, Upper: 1}, "needs observations"},
		{
			"MismatchedDilutions",
			jobFile{Model: &def, Dilutions: []float64{1}, Observations: []float64{1, 2}, Upper: 1},
			"dilutions for",
		},
		{
			"BadBounds",
			jobFile{Model: &def, Observations: []float64{1}, Lower: 2, Upper: 2},
			"bounds",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapJob("job.yaml", tt.file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "job.yaml")
		})
	}
}

func TestLoadJobErrors(t *testing.T) {
	_, err := loadJob(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{{{"), 0o644))
	_, err = loadJob(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
