package main

import "ytscribe/internal/cli"

func main() {
	cli.Main()
}
