package main

import "github.com/sadopc/fitsync/internal/cli"

func main() {
	cli.Execute()
}
