package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/mentorstack/mentorstack-api/config"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"go.uber.org/zap"
)

var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
	pyroscope.ProfileBlockCount,
	pyroscope.ProfileBlockDuration,
}

// sampleTypeKeys maps O11Y_PROFILING_SAMPLE_TYPES entries onto pyroscope
// profile types. mutex and block each expand to a count/duration pair.
var sampleTypeKeys = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// InitProfiler starts continuous profiling when enabled and returns a stop
// function. When profiling is disabled the stop function is a no-op, so
// callers can defer it unconditionally.
func InitProfiler(cfg config.ProfilingConfig, serviceName, namespace, version, instanceID, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}
	if cfg.UploadIntervalSeconds <= 0 {
		cfg.UploadIntervalSeconds = 15
	}

	profileTypes, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	applicationName := buildApplicationName(
		cfg.AppName,
		serviceName,
		namespace,
		environment,
		version,
		instanceID,
	)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: applicationName,
		ServerAddress:   cfg.Endpoint,
		UploadRate:      time.Duration(cfg.UploadIntervalSeconds) * time.Second,
		ProfileTypes:    profileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", applicationName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("sample_types", cfg.SampleTypes),
		zap.Int("upload_interval_seconds", cfg.UploadIntervalSeconds),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

// parseProfileTypes expands the comma-separated sample type list. An empty
// or all-whitespace value selects the full default set; an unknown key is a
// configuration error, not something to skip silently.
func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultProfileTypes, nil
	}

	var types []pyroscope.ProfileType
	seen := make(map[pyroscope.ProfileType]struct{})

	for _, raw := range strings.Split(value, ",") {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}

		expanded, ok := sampleTypeKeys[key]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", key)
		}

		for _, pt := range expanded {
			if _, dup := seen[pt]; dup {
				continue
			}
			seen[pt] = struct{}{}
			types = append(types, pt)
		}
	}

	if len(types) == 0 {
		return defaultProfileTypes, nil
	}
	return types, nil
}

// buildApplicationName renders the pyroscope application name with its
// label set. Empty labels are omitted; SERVICE_INSTANCE_ID in particular is
// unset outside orchestrated deployments.
func buildApplicationName(baseAppName, serviceName, namespace, environment, version, instanceID string) string {
	baseAppName = strings.TrimSpace(baseAppName)
	if baseAppName == "" {
		baseAppName = "mentorstack-api"
	}

	pairs := [][2]string{
		{"service_name", serviceName},
		{"namespace", namespace},
		{"environment", environment},
		{"service_version", version},
		{"instance", instanceID},
	}

	labels := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		labels = append(labels, p[0]+"="+p[1])
	}

	return fmt.Sprintf("%s{%s}", baseAppName, strings.Join(labels, ","))
}
