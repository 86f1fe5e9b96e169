package main

import "github.com/ridoystarlord/crudforge/cmd"

func main() {
	cmd.Execute()
}
