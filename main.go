package main

import "gamedata-wiki/cmd"

func main() {
	cmd.Execute()
}
