package main

import "github.com/jake-scott/alexa-eolia/cmd"

func main() {
	cmd.Execute()
}
