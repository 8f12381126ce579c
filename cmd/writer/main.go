package main

import "writer/cmd/writer/cmd"

func main() {
	cmd.Execute()
}
