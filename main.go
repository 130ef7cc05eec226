package main

import "github.com/twiced-technology-gmbh/todo/cmd"

func main() {
	cmd.Execute()
}
