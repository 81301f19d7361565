package main

import "github.com/aalvaropc/digitprobe/internal/cli"

func main() {
	cli.Execute()
}
