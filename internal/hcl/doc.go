// Package hcl provides the HCL implementation of the config.Loader and
// config.Converter interfaces. It parses host configuration files, translates
// them into the config model, and binds cty settings onto Go structs.
package hcl
