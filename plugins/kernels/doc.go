// Package kernels is an example plugin library exporting kernel functions.
//
// Every kernel is exported under its class name typed as sgo.Kernel and under
// the root-suffixed name typed as sgo.Object. The plugin subdirectory builds
// the library as a Go plugin:
//
//	go build -buildmode=plugin -o kernels.so ./plugins/kernels/plugin
package kernels
