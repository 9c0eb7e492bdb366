package main

import "github.com/OpenCircuitLab/SpiceTrace/cmd/spt/cmd"

func main() {
	cmd.Execute()
}
