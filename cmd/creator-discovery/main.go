package main

import "github.com/mrnkim/creator-discovery/internal/cli"

func main() {
	cli.Main()
}
