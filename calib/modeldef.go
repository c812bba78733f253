// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calib

import (
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
)

// A CurveDef is a serializable description of a Curve. Calibration
// tooling writes fitted curves in this form and consumers rebuild
// them with Build.
//
// Kind names the curve family and Params its parameters:
//
//	polynomial               coefficients, lowest order first
//	asymmetric_logistic      lo, hi, xmid, rate, nu
//	saturating_exponential   base, plateau, rate
//
// If LogX is set, the curve is evaluated at log10 of the quantity.
type CurveDef struct {
	Kind   string    `json:"kind" yaml:"kind"`
	Params []float64 `json:"params" yaml:"params"`
	LogX   bool      `json:"log_x,omitempty" yaml:"log_x,omitempty"`
}

// Build constructs the Curve described by d.
func (d CurveDef) Build() (Curve, error) {
	var c Curve
	switch d.Kind {
	case "polynomial":
		if len(d.Params) < 1 {
			return nil, fmt.Errorf("polynomial needs at least 1 parameter, have %d", len(d.Params))
		}
		c = Polynomial(d.Params...)
	case "asymmetric_logistic":
		if len(d.Params) != 5 {
			return nil, fmt.Errorf("asymmetric_logistic needs 5 parameters, have %d", len(d.Params))
		}
		if d.Params[4] <= 0 {
			return nil, fmt.Errorf("asymmetric_logistic needs nu > 0, have %v", d.Params[4])
		}
		c = AsymmetricLogistic(d.Params[0], d.Params[1], d.Params[2], d.Params[3], d.Params[4])
	case "saturating_exponential":
		if len(d.Params) != 3 {
			return nil, fmt.Errorf("saturating_exponential needs 3 parameters, have %d", len(d.Params))
		}
		c = SaturatingExponential(d.Params[0], d.Params[1], d.Params[2])
	default:
		return nil, fmt.Errorf("unknown curve kind %q", d.Kind)
	}
	if d.LogX {
		c = LogX(c)
	}
	return c, nil
}

// A ModelDef is a serializable description of a calibration model.
//
// Family selects the readout distribution: "normal" for NormalModel
// or "t" for TModel. Mu and Sigma describe the trend and spread
// curves. Nu is the degrees of freedom and is only meaningful for
// family "t", where it must be positive.
type ModelDef struct {
	Family string   `json:"family" yaml:"family"`
	Mu     CurveDef `json:"mu" yaml:"mu"`
	Sigma  CurveDef `json:"sigma" yaml:"sigma"`
	Nu     float64  `json:"nu,omitempty" yaml:"nu,omitempty"`
}

// Build constructs the Model described by d.
func (d ModelDef) Build() (Model, error) {
	mu, err := d.Mu.Build()
	if err != nil {
		return nil, fmt.Errorf("mu: %w", err)
	}
	sigma, err := d.Sigma.Build()
	if err != nil {
		return nil, fmt.Errorf("sigma: %w", err)
	}
	switch d.Family {
	case "normal":
		return NormalModel{Mu: mu, Sigma: sigma}, nil
	case "t":
		if d.Nu <= 0 {
			return nil, fmt.Errorf("family t needs nu > 0, have %v", d.Nu)
		}
		return TModel{Mu: mu, Sigma: sigma, Nu: d.Nu}, nil
	default:
		return nil, fmt.Errorf("unknown model family %q", d.Family)
	}
}

// WriteModelDef writes d to w as indented JSON.
func WriteModelDef(w io.Writer, d ModelDef) error {
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// ReadModelDef reads a JSON ModelDef from r. It does not validate
// the definition; Build reports definitions that cannot be realized.
func ReadModelDef(r io.Reader) (ModelDef, error) {
	var d ModelDef
	if err := gojson.NewDecoder(r).Decode(&d); err != nil {
		return ModelDef{}, err
	}
	return d, nil
}
