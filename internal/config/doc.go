// Package config defines the format-agnostic host configuration: which plugin
// libraries to open, which capabilities to resolve from them and where to
// publish the result. It also declares the Loader and Converter interfaces
// implemented by format-specific packages such as internal/hcl.
package config
