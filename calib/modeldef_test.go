// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveDefBuild(t *testing.T) {
	tests := []struct {
		name string
		def  CurveDef
		x    float64
		want float64
	}{
		{"Polynomial", CurveDef{Kind: "polynomial", Params: []float64{1, 2, 3}}, 2, 17},
		{"Constant", CurveDef{Kind: "polynomial", Params: []float64{0.5}}, 100, 0.5},
		{"Logistic", CurveDef{Kind: "asymmetric_logistic", Params: []float64{0, 10, 2, 1.5, 1}}, 2, 5},
		{"Saturating", CurveDef{Kind: "saturating_exponential", Params: []float64{1, 3, 0.5}}, 0, 1},
		{"LogX", CurveDef{Kind: "polynomial", Params: []float64{0, 1}, LogX: true}, 100, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.def.Build()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, c(tt.x), 1e-12)
		})
	}
}

func TestCurveDefBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		def     CurveDef
		wantErr string
	}{
		{"UnknownKind", CurveDef{Kind: "spline"}, `unknown curve kind "spline"`},
		{"EmptyPolynomial", CurveDef{Kind: "polynomial"}, "at least 1 parameter"},
		{"ShortLogistic", CurveDef{Kind: "asymmetric_logistic", Params: []float64{0, 10, 2, 1.5}}, "needs 5 parameters"},
		{"BadNu", CurveDef{Kind: "asymmetric_logistic", Params: []float64{0, 10, 2, 1.5, -1}}, "nu > 0"},
		{"ShortSaturating", CurveDef{Kind: "saturating_exponential", Params: []float64{1, 3}}, "needs 3 parameters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestModelDefBuild(t *testing.T) {
	def := ModelDef{
		Family: "normal",
		Mu:     CurveDef{Kind: "polynomial", Params: []float64{0, 2}},
		Sigma:  CurveDef{Kind: "polynomial", Params: []float64{1}},
	}
	m, err := def.Build()
	require.NoError(t, err)
	want := NormalModel{Mu: Polynomial(0, 2), Sigma: Polynomial(1)}
	assert.InDelta(t, want.LogLikelihood(3, 8), m.LogLikelihood(3, 8), 1e-12)

	def.Family = "t"
	def.Nu = 4
	m, err = def.Build()
	require.NoError(t, err)
	wantT := TModel{Mu: Polynomial(0, 2), Sigma: Polynomial(1), Nu: 4}
	assert.InDelta(t, wantT.LogLikelihood(3, 8), m.LogLikelihood(3, 8), 1e-12)
}

func TestModelDefBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		def     ModelDef
		wantErr string
	}{
		{
			"UnknownFamily",
			ModelDef{
				Family: "laplace",
				Mu:     CurveDef{Kind: "polynomial", Params: []float64{0, 1}},
				Sigma:  CurveDef{Kind: "polynomial", Params: []float64{1}},
			},
			`unknown model family "laplace"`,
		},
		{
			"MissingNu",
			ModelDef{
				Family: "t",
				Mu:     CurveDef{Kind: "polynomial", Params: []float64{0, 1}},
				Sigma:  CurveDef{Kind: "polynomial", Params: []float64{1}},
			},
			"nu > 0",
		},
		{
			"BadMu",
			ModelDef{
				Family: "normal",
				Mu:     CurveDef{Kind: "spline"},
				Sigma:  CurveDef{Kind: "polynomial", Params: []float64{1}},
			},
			"mu: unknown curve kind",
		},
		{
			"BadSigma",
			ModelDef{
				Family: "normal",
				Mu:     CurveDef{Kind: "polynomial", Params: []float64{0, 1}},
				Sigma:  CurveDef{Kind: "polynomial"},
			},
			"sigma: polynomial needs",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestModelDefRoundTrip(t *testing.T) {
	def := ModelDef{
		Family: "t",
		Mu:     CurveDef{Kind: "asymmetric_logistic", Params: []float64{0.1, 2.5, 1, 3, 0.8}, LogX: true},
		Sigma:  CurveDef{Kind: "polynomial", Params: []float64{0.02, 0.01}},
		Nu:     5,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteModelDef(&buf, def))
	assert.Contains(t, buf.String(), `"asymmetric_logistic"`)

	got, err := ReadModelDef(&buf)
	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestReadModelDefError(t *testing.T) {
	_, err := ReadModelDef(strings.NewReader("{not json"))
	require.Error(t, err)
}
