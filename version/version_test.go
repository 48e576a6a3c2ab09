package version

import (
	"runtime/debug"
	"testing"
)

func TestGet_LdflagsWin(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "v9.9.9"
	if got := Get(); got != "v9.9.9" {
		t.Errorf("Get() = %q", got)
	}
}

func TestGet_Default(t *testing.T) {
	if got := Get(); got == "" {
		t.Error("Get() returned an empty version")
	}
}

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name string
		info *debug.BuildInfo
		want string
	}{
		{
			name: "main module in development",
			info: &debug.BuildInfo{Main: debug.Module{Path: ModulePath, Version: "(devel)"}},
			want: "dev",
		},
		{
			name: "dependency",
			info: &debug.BuildInfo{
				Main: debug.Module{Path: "example.com/app"},
				Deps: []*debug.Module{{Path: "github.com/other/lib", Version: "v0.1.0"}, {Path: ModulePath, Version: "v1.4.2"}},
			},
			want: "v1.4.2",
		},
		{
			name: "replaced dependency",
			info: &debug.BuildInfo{
				Deps: []*debug.Module{{Path: ModulePath, Version: "v1.0.0", Replace: &debug.Module{Path: "../httpfacade", Version: "v1.0.1-local"}}},
			},
			want: "v1.0.1-local",
		},
		{
			name: "absent",
			info: &debug.BuildInfo{Main: debug.Module{Path: "example.com/app"}},
			want: "dev",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromBuildInfo(tt.info); got != tt.want {
				t.Errorf("fromBuildInfo() = %q, want %q", got, tt.want)
			}
		})
	}
}
