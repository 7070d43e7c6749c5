package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/shacl"
)

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"non-conforming", errNonConforming, exitNonConforming},
		{"wrapped non-conforming", fmt.Errorf("run: %w", errNonConforming), exitNonConforming},
		{"not found", fmt.Errorf("loading: %w", rdf.ErrNotFound), exitNotFound},
		{"parse error", &rdf.ParseError{Path: "x.ttl", Line: 3, Msg: "bad token"}, exitParse},
		{"catalog error", &shacl.CatalogError{Shape: "PortShape", Msg: "empty target"}, exitConfig},
		{"configuration", fmt.Errorf("%w: no project root", errConfiguration), exitConfig},
		{"validation execution", fmt.Errorf("%w: render failed", errValidationFailed), exitValidation},
		{"unknown", fmt.Errorf("boom"), exitUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRunQueryUnknownName(t *testing.T) {
	err := runQuery(rdf.NewStore(), "bogus")
	assert.ErrorIs(t, err, errConfiguration)
}

func TestChangeMarker(t *testing.T) {
	assert.Equal(t, "+", changeMarker("added"))
	assert.Equal(t, "-", changeMarker("removed"))
	assert.Equal(t, "~", changeMarker("changed"))
}
