package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/nodebridge/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(paths ...string) *app.Config {
	return &app.Config{
		Paths:     paths,
		Format:    "json",
		Workers:   4,
		LogFormat: "text",
		LogLevel:  "info",
		Publish: app.PublishConfig{
			Namespace: "/",
			Event:     "document",
			Timeout:   10 * time.Second,
		},
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		environ        map[string]string
		wantConfig     *app.Config
		wantShouldExit bool
		wantErrCode    int
		wantErrMsg     string
		wantOutput     string
	}{
		{
			name:       "positional file",
			args:       []string{"view.hcl"},
			wantConfig: defaultConfig("view.hcl"),
		},
		{
			name: "multiple files and options",
			args: []string{
				"-path", "screens[0]", "-format", "YAML", "-var", "name=Ada", "-var", "lang=en",
				"-workers", "8", "-log-format", "JSON", "-log-level", "debug", "a.hcl", "b.lua",
			},
			wantConfig: func() *app.Config {
				c := defaultConfig("a.hcl", "b.lua")
				c.Path = "screens[0]"
				c.Format = "yaml"
				c.Vars = map[string]string{"name": "Ada", "lang": "en"}
				c.Workers = 8
				c.LogFormat = "json"
				c.LogLevel = "debug"
				return c
			}(),
		},
		{
			name: "publish options",
			args: []string{
				"-publish-url", "http://localhost:3000/socket.io/", "-publish-ack-event", "ack",
				"-publish-timeout", "2s", "-insecure-skip-verify", "view.lua",
			},
			wantConfig: func() *app.Config {
				c := defaultConfig("view.lua")
				c.Publish.URL = "http://localhost:3000/socket.io/"
				c.Publish.AckEvent = "ack"
				c.Publish.Timeout = 2 * time.Second
				c.Publish.InsecureSkipVerify = true
				return c
			}(),
		},
		{
			name: "environment defaults",
			environ: map[string]string{
				"NODEBRIDGE_PATHS":  "views",
				"NODEBRIDGE_FORMAT": "msgpack",
				"NODEBRIDGE_VARS":   "name:Env",
			},
			args: []string{"-var", "lang=en"},
			wantConfig: func() *app.Config {
				c := defaultConfig("views")
				c.Format = "msgpack"
				c.Vars = map[string]string{"name": "Env", "lang": "en"}
				return c
			}(),
		},
		{
			name:       "flags override environment",
			environ:    map[string]string{"NODEBRIDGE_PATHS": "views", "NODEBRIDGE_LOG_LEVEL": "warn"},
			args:       []string{"-log-level", "info", "other.hcl"},
			wantConfig: defaultConfig("other.hcl"),
		},
		{
			name:           "no file prints usage",
			args:           []string{},
			wantShouldExit: true,
			wantOutput:     "Usage:",
		},
		{
			name:           "help flag",
			args:           []string{"-h"},
			wantShouldExit: true,
			wantOutput:     "Usage:",
		},
		{
			name:        "unknown flag",
			args:        []string{"--nope", "view.hcl"},
			wantErrCode: 2,
			wantErrMsg:  "flag provided but not defined: -nope",
		},
		{
			name:        "malformed var",
			args:        []string{"-var", "novalue", "view.hcl"},
			wantErrCode: 2,
			wantErrMsg:  `expected name=value, got "novalue"`,
		},
		{
			name:        "invalid log format",
			args:        []string{"-log-format", "xml", "view.hcl"},
			wantErrCode: 2,
			wantErrMsg:  "invalid log-format: must be 'text' or 'json'",
		},
		{
			name:        "invalid log level",
			args:        []string{"-log-level", "trace", "view.hcl"},
			wantErrCode: 2,
			wantErrMsg:  "invalid log-level",
		},
		{
			name:        "invalid format",
			args:        []string{"-format", "xml", "view.hcl"},
			wantErrCode: 2,
			wantErrMsg:  `unknown format "xml"`,
		},
		{
			name:        "invalid path",
			args:        []string{"-path", "a..b", "view.hcl"},
			wantErrCode: 2,
			wantErrMsg:  "invalid path",
		},
		{
			name:        "invalid environment",
			environ:     map[string]string{"NODEBRIDGE_WORKERS": "lots"},
			args:        []string{"view.hcl"},
			wantErrCode: 2,
			wantErrMsg:  "failed to read environment",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			environ := tc.environ
			if environ == nil {
				environ = map[string]string{}
			}
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out, environ)

			// --- Assert ---
			if tc.wantErrCode != 0 {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "error should be an ExitError")
				assert.Equal(t, tc.wantErrCode, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.wantErrMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantShouldExit, shouldExit)
			if tc.wantOutput != "" {
				assert.Contains(t, out.String(), tc.wantOutput)
			}
			if diff := cmp.Diff(tc.wantConfig, cfg); diff != "" {
				t.Errorf("Parse() config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
