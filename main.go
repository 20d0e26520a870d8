package main

import "github.com/lepinkainen/coelho/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
