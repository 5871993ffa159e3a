package profiling

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/postad/postad-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileTypes_Default(t *testing.T) {
	got, err := parseProfileTypes(" ")
	require.NoError(t, err)
	assert.Equal(t, defaultProfileTypes, got)
}

func TestParseProfileTypes_Custom(t *testing.T) {
	got, err := parseProfileTypes("cpu, inuse,,mutex,cpu")
	require.NoError(t, err)

	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileInuseObjects,
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
	}, got)
}

func TestParseProfileTypes_Invalid(t *testing.T) {
	_, err := parseProfileTypes("cpu,heap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported O11Y_PROFILING_SAMPLE_TYPES")
}

func TestBuildApplicationName(t *testing.T) {
	got := buildApplicationName("", map[string]string{
		"service_name":    "postad-api",
		"namespace":       "ads",
		"environment":     "production",
		"service_version": "1.0.0",
		"instance":        "pod-1",
	})
	assert.Equal(t, "postad-api{service_name=postad-api,namespace=ads,environment=production,service_version=1.0.0,instance=pod-1}", got)
}

func TestBuildApplicationName_SkipsEmptyLabels(t *testing.T) {
	assert.Equal(t, "forms{environment=development}", buildApplicationName(" forms ", map[string]string{"environment": "development"}))
	assert.Equal(t, "postad-api", buildApplicationName("", nil))
}

func TestInitProfiler_Disabled(t *testing.T) {
	stop, err := InitProfiler(config.ProfilingConfig{}, config.ObservabilityConfig{}, "test")

	require.NoError(t, err)
	assert.NotPanics(t, stop)
}

func TestInitProfiler_RequiresEndpoint(t *testing.T) {
	_, err := InitProfiler(config.ProfilingConfig{Enabled: true}, config.ObservabilityConfig{}, "test")

	assert.Error(t, err)
}
