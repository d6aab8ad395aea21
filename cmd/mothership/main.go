package main

import "github.com/timaa2k/motherlib/cmd/mothership/cmd"

func main() {
	cmd.Execute()
}
