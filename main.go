package main

import (
	"github.com/joyshmitz/phagemix/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
