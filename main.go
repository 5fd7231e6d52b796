package main

import "github.com/KaramelBytes/songbook-cli/cmd"

func main() {
	cmd.Execute()
}
