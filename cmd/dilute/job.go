// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aclements/go-calibrate/calib"
	"github.com/aclements/go-calibrate/dilution"
	"github.com/aclements/go-calibrate/posterior"
)

// A jobFile is the YAML form of one inference job. Exactly one of
// Model and ModelFile describes the calibration model; ModelFile
// paths are resolved relative to the job file.
type jobFile struct {
	Model        *calib.ModelDef `yaml:"model"`
	ModelFile    string          `yaml:"model_file"`
	Dilutions    []float64       `yaml:"dilutions"`
	Observations []float64       `yaml:"observations"`
	Lower        float64         `yaml:"lower"`
	Upper        float64         `yaml:"upper"`
	Steps        int             `yaml:"steps"`
	CIProb       float64         `yaml:"ci_prob"`
}

// A job is a fully resolved inference: a built model plus the
// observations and bounds to infer from.
type job struct {
	name         string
	model        calib.Model
	d, y         []float64
	lower, upper float64
	steps        int
	ciProb       float64
}

func (j job) run() (*posterior.Inference, error) {
	if j.d == nil {
		return dilution.InferUndiluted(j.model, j.y, j.lower, j.upper, j.steps, j.ciProb)
	}
	return dilution.Infer(j.model, j.d, j.y, j.lower, j.upper, j.steps, j.ciProb)
}

func loadJob(path string) (job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return job{}, err
	}
	var f jobFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return job{}, fmt.Errorf("%s: %w", path, err)
	}
	return mapJob(path, f)
}

func mapJob(path string, f jobFile) (job, error) {
	fail := func(format string, args ...any) (job, error) {
		return job{}, fmt.Errorf("%s: %s", path, fmt.Sprintf(format, args...))
	}

	var model calib.Model
	switch {
	case f.Model != nil && f.ModelFile != "":
		return fail("model and model_file are mutually exclusive")
	case f.Model != nil:
		m, err := f.Model.Build()
		if err != nil {
			return fail("model: %v", err)
		}
		model = m
	case f.ModelFile != "":
		file := f.ModelFile
		if !filepath.IsAbs(file) {
			file = filepath.Join(filepath.Dir(path), file)
		}
		m, err := loadModel(file)
		if err != nil {
			return job{}, err
		}
		model = m
	default:
		return fail("needs a model or a model_file")
	}

	if len(f.Observations) == 0 {
		return fail("needs observations")
	}
	if len(f.Dilutions) != 0 && len(f.Dilutions) != len(f.Observations) {
		return fail("%d dilutions for %d observations", len(f.Dilutions), len(f.Observations))
	}
	if !(f.Lower < f.Upper) {
		return fail("needs bounds lower < upper, have [%v, %v]", f.Lower, f.Upper)
	}

	return job{
		name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		model:  model,
		d:      f.Dilutions,
		y:      f.Observations,
		lower:  f.Lower,
		upper:  f.Upper,
		steps:  f.Steps,
		ciProb: f.CIProb,
	}, nil
}

func loadModel(path string) (calib.Model, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	def, err := calib.ReadModelDef(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
