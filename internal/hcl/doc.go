// Package hcl provides the concrete HCL implementation of config.Loader. It
// is responsible for all file parsing, HCL-to-plan translation, and
// CTY-to-Go value binding.
package hcl
