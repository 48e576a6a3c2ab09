// Package version reports the httpfacade library version.
//
// Release builds may pin it via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/httpfacade/version.Version=v1.2.0"
//
// Otherwise the version is read from the build info of the binary that
// imports the module.
package version
