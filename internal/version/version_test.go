package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuildInfo(t *testing.T, version, commit, built string) {
	t.Helper()
	origVersion, origCommit, origBuilt := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuilt
	})
	Version, Commit, BuildDate = version, commit, built
}

func TestBuildInfo(t *testing.T) {
	tests := []struct {
		name         string
		version      string
		commit       string
		built        string
		wantFull     string
		wantShort    string
		wantSoftware string
	}{
		{
			name:         "development build",
			version:      "dev",
			commit:       "unknown",
			built:        "unknown",
			wantFull:     "httpmsg dev (commit: unknown, built: unknown)",
			wantShort:    "dev",
			wantSoftware: "httpmsg/dev",
		},
		{
			name:         "release build",
			version:      "v0.3.1",
			commit:       "9f2c1ab",
			built:        "2026-10-01",
			wantFull:     "httpmsg v0.3.1 (commit: 9f2c1ab, built: 2026-10-01)",
			wantShort:    "v0.3.1",
			wantSoftware: "httpmsg/v0.3.1",
		},
		{
			name:         "version stripped by linker",
			wantFull:     "httpmsg  (commit: , built: )",
			wantSoftware: "httpmsg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuildInfo(t, tt.version, tt.commit, tt.built)

			assert.Equal(t, tt.wantFull, GetVersion())
			assert.Equal(t, tt.wantShort, GetShortVersion())
			assert.Equal(t, tt.wantSoftware, ServerSoftware())
		})
	}
}
