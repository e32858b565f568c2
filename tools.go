//go:build tools
// +build tools

package main

// Pin CLI tools used by the build so `go mod tidy` keeps them in go.mod.
import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)
