// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"bvsynth/internal/bvconfig"
	"bvsynth/internal/bvrepl"
)

func main() {
	configPath := flag.String("config", "", "path to a bvsynth.yaml config file")
	flag.Parse()

	cfg, err := bvconfig.Load(*configPath)
	if err != nil {
		log.Fatalf("bvsynth-repl: loading config: %v", err)
	}

	bvrepl.Start(os.Stdin, os.Stdout, cfg.CacheDir)
}
