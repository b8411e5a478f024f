package main

import "github.com/marine-term-translations/setup-harvest-action/commands"

func main() {
	commands.Execute()
}
