// Package main is the entry point for the pitchmetrics CLI tool, which
// ingests football match event streams and computes player/team performance
// metrics.
package main

import "github.com/pitchlab/go-pitch-metrics/cmd"

func main() {
	cmd.Execute()
}
