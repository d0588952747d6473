package main

import "github.com/markb/blockwarden/cmd"

func main() {
	cmd.Execute()
}
