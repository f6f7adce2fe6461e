package main

import "github.com/bloodmagesoftware/summit/cmd"

func main() {
	cmd.Execute()
}
