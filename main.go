package main

import "github.com/ripred/github-traffic/cmd"

func main() {
	cmd.Execute()
}
