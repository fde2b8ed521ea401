package main

import "mangastore/cmd/api/commands"

func main() {
	commands.Execute()
}
