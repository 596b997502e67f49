package main

import "github.com/kiesman99/imagecraft/cmd"

func main() {
	cmd.Execute()
}
