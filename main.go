package main

import "github.com/recognarr/recognarr/cmd"

func main() {
	cmd.Execute()
}
