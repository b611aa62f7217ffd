package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_AddsBuildInfo_When_VerbosityAtLeastTwo(t *testing.T) {
	assert.Equal(t, "pyinit "+Version, String("pyinit", 1))

	vv := String("pyinit", 2)
	assert.Contains(t, vv, CommitHash)
	assert.Contains(t, vv, BuildDate)
	assert.Contains(t, vv, runtime.Version())
}
