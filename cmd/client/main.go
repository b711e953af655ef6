package main

import "fluiddiary/cmd/client/cmd"

func main() {
	cmd.Execute()
}
