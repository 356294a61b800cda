package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ionenergy/ionctl/pkg/version"
)

func TestDefaults(t *testing.T) {
	assert.NotEmpty(t, version.GetVersion())
	assert.NotEmpty(t, version.GetCommit())
}
