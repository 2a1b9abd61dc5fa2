package main

import "github.com/blacktop/go-termview/cmd/termview/cmd"

func main() {
	cmd.Execute()
}
