package main

import "github.com/KaramelBytes/trophyfit-cli/cmd"

func main() {
	cmd.Execute()
}
