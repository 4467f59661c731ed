package main

import "touchkeys/cmd"

func main() {
	cmd.Execute()
}
