package main

import "github.com/relictool/relic/internal/cli"

func main() {
	cli.Execute()
}
