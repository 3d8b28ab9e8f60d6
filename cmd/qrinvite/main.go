package main

import "github.com/mcoot/qrinvite/internal/cli"

func main() {
	cli.Execute()
}
