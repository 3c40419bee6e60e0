package main

import "textcat/cmd"

func main() {
	cmd.Execute()
}
