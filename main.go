package main

import "github.com/osmiq/osmiq/internal/commands"

func main() {
	commands.Execute()
}
