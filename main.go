package main

import "github.com/josephlewis42/loadables/cmd"

func main() {
	cmd.Execute()
}
