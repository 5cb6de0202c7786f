// SPDX-License-Identifier: MIT

// pads-validate checks pads input files without a running daemon.
//
// Usage:
//
//	pads-validate -f graph.yaml                 validate a graph definition
//	pads-validate -f graph.yaml -no-self-loops  additionally reject self-loops
//	pads-validate -c config.yaml                validate a daemon config file
//
// Graph definitions are YAML or JSON documents with a name and an edges
// map. On success the tool prints a short connectivity summary.
//
// Exit codes:
//   - 0: input is valid
//   - 1: input is invalid (parse or validation error)
//   - 2: usage error
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/padslib/pads/internal/config"
	"github.com/padslib/pads/internal/graph"
	"github.com/padslib/pads/internal/version"
)

type graphFile struct {
	Name  string              `yaml:"name" json:"name"`
	Edges map[string][]string `yaml:"edges" json:"edges"`
}

func main() {
	var graphPath, configPath string
	var noSelfLoops, showVersion bool

	flag.StringVar(&graphPath, "file", "", "path to a graph definition (YAML or JSON)")
	flag.StringVar(&graphPath, "f", "", "path to a graph definition (shorthand)")
	flag.StringVar(&configPath, "config", "", "path to a daemon config file (YAML)")
	flag.StringVar(&configPath, "c", "", "path to a daemon config file (shorthand)")
	flag.BoolVar(&noSelfLoops, "no-self-loops", false, "reject graphs where a vertex lists itself as a neighbor")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.Version)
		os.Exit(0)
	}

	switch {
	case graphPath != "":
		os.Exit(validateGraph(graphPath, noSelfLoops))
	case configPath != "":
		os.Exit(validateConfig(configPath))
	default:
		fmt.Fprintln(os.Stderr, "Error: one of --file or --config is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  pads-validate -f graph.yaml")
		fmt.Fprintln(os.Stderr, "  pads-validate -c config.yaml")
		os.Exit(2)
	}
}

func validateGraph(path string, noSelfLoops bool) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s:\n  %v\n", path, err)
		return 1
	}

	var gf graphFile
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, &gf)
	} else {
		err = yaml.Unmarshal(data, &gf)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error in %s:\n  %v\n", path, err)
		return 1
	}
	if gf.Edges == nil {
		fmt.Fprintf(os.Stderr, "Validation error in %s:\n  edges map is required\n", path)
		return 1
	}
	if noSelfLoops {
		if loops := selfLoops(gf.Edges); len(loops) > 0 {
			fmt.Fprintf(os.Stderr, "Validation error in %s:\n  self-loops on: %s\n",
				path, strings.Join(loops, ", "))
			return 1
		}
	}

	g := graph.FromAdjacency(gf.Edges)
	comps := graph.StrongComponents(g)
	largest := 0
	for _, c := range comps {
		if len(c) > largest {
			largest = len(c)
		}
	}

	fmt.Printf("✓ %s is valid\n", path)
	fmt.Printf("  vertices: %d, edges: %d, strong components: %d, largest: %d\n",
		g.Order(), g.Size(), len(comps), largest)
	return 0
}

// selfLoops returns the vertices that list themselves as a neighbor, in
// sorted order.
func selfLoops(edges map[string][]string) []string {
	var loops []string
	for v, targets := range edges {
		if slices.Contains(targets, v) {
			loops = append(loops, v)
		}
	}
	slices.Sort(loops)
	return loops
}

func validateConfig(path string) int {
	if _, err := config.NewLoader(path, version.Version).Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error in %s:\n  %v\n", path, err)
		return 1
	}
	fmt.Printf("✓ %s is valid\n", path)
	return 0
}
