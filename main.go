package main

import "github.com/moyu-x/forganize/cmd"

func main() {
	cmd.Execute()
}
