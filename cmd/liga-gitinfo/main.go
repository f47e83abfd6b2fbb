package main

import "github.com/diffpy/liga/cmd/liga-gitinfo/cmd"

func main() {
	cmd.Execute()
}
