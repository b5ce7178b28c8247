package main

import "github.com/artemshloyda/picturegen/internal/cli"

func main() {
	cli.Execute()
}
