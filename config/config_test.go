package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  Config
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: Config{
				RunAddress: "localhost:8080",
				ArchiveDB:  "payroll.db",
				ReportDir:  "reports",
				LogLevel:   "info",

				AutoRunInterval: time.Hour,
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"RUN_ADDRESS": "localhost:9999",
				"ARCHIVE_DB":  ":memory:",
				"REPORT_DIR":  "/tmp/folhas",
				"LOG_LEVEL":   "debug",

				"AUTO_RUN":          "true",
				"AUTO_RUN_INTERVAL": "15m",
			},
			flags: []string{},
			want: Config{
				RunAddress:      "localhost:9999",
				ArchiveDB:       ":memory:",
				ReportDir:       "/tmp/folhas",
				LogLevel:        "debug",
				AutoRun:         true,
				AutoRunInterval: 15 * time.Minute,
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "localhost:7777",
				"-db", "flag.db",
				"-reports", "out",
				"-auto",
				"-auto-interval", "30s",
			},
			want: Config{
				RunAddress:      "localhost:7777",
				ArchiveDB:       "flag.db",
				ReportDir:       "out",
				LogLevel:        "info",
				AutoRun:         true,
				AutoRunInterval: 30 * time.Second,
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"RUN_ADDRESS": "env:9000",
				"ARCHIVE_DB":  "env.db",

				"AUTO_RUN_INTERVAL": "2h",
			},
			flags: []string{
				"-a", "flag:8000",
				"-db", "flag.db",
				"-log", "debug",
				"-auto-interval", "5m",
			},
			want: Config{
				RunAddress:      "env:9000",
				ArchiveDB:       "env.db",
				ReportDir:       "reports",
				LogLevel:        "debug",
				AutoRunInterval: 2 * time.Hour,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}
