// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/segmentio/ksuid"

	"bvsynth/internal/bvast"
	"bvsynth/internal/bvcardinal"
	"bvsynth/internal/bvconfig"
	"bvsynth/internal/bvprotocol"
	"bvsynth/internal/eugeo"
	"bvsynth/internal/solvererr"
)

func main() {
	configPath := flag.String("config", "", "path to a bvsynth.yaml config file")
	flag.Parse()

	cfg, err := bvconfig.Load(*configPath)
	if err != nil {
		log.Fatalf("bvsynth-solve: loading config: %v", err)
	}

	catalogs := map[bvast.OpSet]*eugeo.Catalog{}

	reader := bvprotocol.NewReader(os.Stdin)
	writer := bvprotocol.NewWriter(os.Stdout)

	for {
		req, err := reader.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Printf("malformed request: %v", err)
			if writeErr := writer.WriteEmpty(); writeErr != nil {
				log.Fatalf("bvsynth-solve: writing response: %v", writeErr)
			}
			continue
		}

		id := ksuid.New()
		timeout := time.Duration(req.TimeoutSec) * time.Second
		if req.TimeoutSec <= 0 {
			timeout = time.Duration(cfg.DefaultTimeoutSec) * time.Second
		}
		maxSize := req.ExprSize
		if maxSize <= 0 {
			maxSize = cfg.DefaultMaxSize
		}

		log.Printf("[%s] size=%d timeout=%s args=%d refinement_args=%d", id, maxSize, timeout, len(req.Args), len(req.RefinementArgs))

		catalog := catalogFor(catalogs, req.Ops, cfg.MaxBody)
		problem := req.ToProblem()
		problem.MaxSize = maxSize

		expr, err := bvcardinal.Assemble(problem, catalog, timeout)
		if err != nil {
			if solvererr.IsFatal(err) {
				log.Fatalf("[%s] invariant violation: %v", id, err)
			}
			log.Printf("[%s] no solution: %v", id, err)
			if writeErr := writer.WriteEmpty(); writeErr != nil {
				log.Fatalf("bvsynth-solve: writing response: %v", writeErr)
			}
			continue
		}

		color.Green("[%s] solved: %s", id, expr.String())
		if writeErr := writer.WriteSolution(expr); writeErr != nil {
			log.Fatalf("bvsynth-solve: writing response: %v", writeErr)
		}
	}
}

// catalogFor returns the fold-body catalog for the fold/tfold-stripped
// operator set ops, building and caching it on first use. The catalog
// depends only on which non-fold operators a request enables, so it is
// reused across every request that shares that subset for the life of
// the process.
func catalogFor(catalogs map[bvast.OpSet]*eugeo.Catalog, ops bvast.OpSet, maxBody int) *eugeo.Catalog {
	bodyOps := ops
	bodyOps &^= 1 << uint(bvast.OpFold)
	bodyOps &^= 1 << uint(bvast.OpTFold)
	if c, ok := catalogs[bodyOps]; ok {
		return c
	}
	c := eugeo.BuildWithMaxBody(bodyOps, maxBody)
	catalogs[bodyOps] = c
	return c
}
