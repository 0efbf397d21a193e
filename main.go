package main

import "hotelfood/cmd"

func main() {
	cmd.Execute()
}
