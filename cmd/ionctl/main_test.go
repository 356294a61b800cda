package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ionenergy/ionctl/internal/cli"
	"github.com/ionenergy/ionctl/internal/pages"
	"github.com/ionenergy/ionctl/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "ionctl", root.Use)
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "generic error", err: errors.New("boom"), want: 1},
		{name: "rejected save", err: fmt.Errorf("%w: duplicate name", pages.ErrSaveFailed), want: 2},
		{name: "failed report", err: fmt.Errorf("%w: timeout", cli.ErrReport), want: 2},
		{name: "record not found", err: fmt.Errorf("%w: charger C9", cli.ErrNotFound), want: 3},
		{
			name: "wrapped not found",
			err:  errors.Join(errors.New("outer"), fmt.Errorf("%w: tariff K1", cli.ErrNotFound)),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
