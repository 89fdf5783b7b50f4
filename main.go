package main

import "github.com/user/segcut/cmd"

func main() {
	cmd.Execute()
}
