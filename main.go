package main

import "vaultkeep/cmd"

func main() {
	cmd.Execute()
}
