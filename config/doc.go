// SPDX-License-Identifier: MIT

// Package config loads the YAML process configuration shared by the
// lvdecomp CLI and HTTP server: the numeric policy handed to
// decompose.Engine, logging, server limits and the redis result cache.
// Every key is optional; Load starts from Default.
package config
