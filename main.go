package main

import "github.com/douhashi/merge-labeler/cmd"

func main() {
	cmd.Execute()
}
