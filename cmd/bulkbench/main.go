// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command bulkbench runs the full benchmark suite and writes the results
// in the perf report format the CI tooling consumes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ewall-cauc/mongo-cxx-driver/benchmark"
)

func main() {
	err := mainReal()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(-1)
	}
}

func mainReal() error {
	outPath := flag.String("output", "perf.json", "path of the perf report to write")
	flag.Parse()

	results := benchmark.RunAllCases(context.Background())

	perf := []interface{}{}
	var failed []string
	for _, res := range results {
		if res.HasErrors() {
			failed = append(failed, res.Name)
		}
		evg, err := res.EvergreenPerfFormat()
		if err != nil {
			return fmt.Errorf("cannot render results for %s: %w", res.Name, err)
		}
		perf = append(perf, evg...)
	}

	data, err := json.MarshalIndent(perf, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("benchmark cases failed: %s", strings.Join(failed, ", "))
	}
	return nil
}
