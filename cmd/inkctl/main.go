package main

import "github.com/inkpress/inkctl/cmd/inkctl/cmd"

func main() {
	cmd.Execute()
}
