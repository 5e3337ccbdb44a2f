package main

import "github.com/ArnaudCalmettes/seuil/cmd"

func main() {
	cmd.Execute()
}
