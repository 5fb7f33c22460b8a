package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "v1.2.3"

	var buf bytes.Buffer
	PrintBuildData(&buf)

	out := buf.String()
	assert.Contains(t, out, "Build version: v1.2.3\n")
	assert.Contains(t, out, "Build date: N/A\n")
	assert.Contains(t, out, "Build commit: N/A\n")
}
