// Package main is the entry point for the repograde CLI.
package main

import (
	"github.com/huangsam/repograde/cmd"
	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseCaching()
	if err != nil {
		contract.LogFatal("Cannot run repograde", err)
	}
}
