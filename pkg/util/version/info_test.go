// SPDX-License-Identifier: AGPL-3.0-only

package version

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	out := Print("yamlcheck")

	assert.True(t, strings.HasPrefix(out, "yamlcheck, version unknown (branch: unknown, revision: unknown)"), out)
	assert.Contains(t, out, "go version:       "+GoVersion)
	assert.Equal(t, "(version=unknown, branch=unknown, revision=unknown)", Info())
}

func TestNewCollector(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector("yamlcheck")))

	count, err := testutil.GatherAndCount(reg, "yamlcheck_build_info")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
