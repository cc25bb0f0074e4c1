package main

import "LocalCanvas/cmd"

func main() {
	cmd.Execute()
}
