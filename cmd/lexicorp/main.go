package main

import "lexicorp/internal/cli"

func main() {
	cli.Execute()
}
