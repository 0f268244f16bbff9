package main

import "github.com/KaramelBytes/edareport-cli/cmd"

func main() {
	cmd.Execute()
}
