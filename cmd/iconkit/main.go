package main

import "iconkit/internal/cli"

func main() {
	cli.Execute()
}
