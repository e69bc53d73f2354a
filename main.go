// main is the entry point for the paleoreel CLI.
package main

import (
	"github.com/huangsam/paleoreel/cmd"
	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseCaching()

	if err := cmd.Execute(); err != nil {
		iocache.CloseCaching()
		contract.LogFatal("paleoreel", err)
	}
}
