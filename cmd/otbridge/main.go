package main

import "github.com/OpenTraceLab/OpenTraceBridge/cmd/otbridge/cmd"

func main() {
	cmd.Execute()
}
