package main

import "github.com/KeitaTsushima/multi-llm-deep-research/internal/cli"

func main() {
	cli.Execute()
}
