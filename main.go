package main

import "techlib/cmd"

func main() {
	cmd.Execute()
}
