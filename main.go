package main

import "github.com/probelabs/deepscout/cmd"

func main() {
	cmd.Execute()
}
