package version

import (
	"runtime/debug"
	"sync"
)

// ModulePath is the import path of the httpfacade module.
const ModulePath = "github.com/kbukum/httpfacade"

// Version is set at build time using -ldflags. "dev" means unset.
var Version = "dev"

var (
	once     sync.Once
	resolved string
)

// Get returns Version when set at build time, otherwise the module
// version recorded in the build info, otherwise "dev".
func Get() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	once.Do(func() {
		resolved = "dev"
		if info, ok := debug.ReadBuildInfo(); ok {
			resolved = fromBuildInfo(info)
		}
	})
	return resolved
}

// fromBuildInfo finds the module version either as the main module or as
// a dependency. Development builds report "(devel)", which maps to "dev".
func fromBuildInfo(info *debug.BuildInfo) string {
	mods := append([]*debug.Module{&info.Main}, info.Deps...)
	for _, m := range mods {
		if m == nil || m.Path != ModulePath {
			continue
		}
		if m.Replace != nil && m.Replace.Version != "" {
			return m.Replace.Version
		}
		if m.Version != "" && m.Version != "(devel)" {
			return m.Version
		}
	}
	return "dev"
}
